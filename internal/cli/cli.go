// Package cli parses command-line arguments for the akanec driver:
// `akanec <input-path> [-o|--output <output-path>]`, plus -vb (verbose/AST
// dump), -ts (token stream dump) and -t (thread count; accepted for
// compatibility, though the pipeline itself always runs single-threaded -
// see DESIGN.md).
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const maxThreads = 64
const defaultOutput = "./a.ll"

// Options holds one parsed invocation of the compiler.
type Options struct {
	Src     string // path to the input source file (required)
	Out     string // path to the output .ll file, defaults to "./a.ll"
	Threads int    // thread count; accepted, currently unused by codegen
	Verbose bool   // -vb: dump the syntax tree before code generation
	Tokens  bool   // -ts: print the token stream and exit
}

// ParseArgs parses os.Args[1:] into Options.
func ParseArgs(args []string) (Options, error) {
	opt := Options{Out: defaultOutput}
	var positional []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			printHelp()
			os.Exit(0)
		case "-o", "--output":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i])
			}
			if strings.HasPrefix(args[i+1], "-") {
				return opt, fmt.Errorf("expected path for %s, got flag %s", args[i], args[i+1])
			}
			opt.Out = args[i+1]
			i++
		case "-t":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("got flag %s but no argument", args[i])
			}
			t, err := strconv.Atoi(args[i+1])
			if err != nil {
				return opt, fmt.Errorf("expected integer thread count, got %q", args[i+1])
			}
			if t < 1 || t > maxThreads {
				return opt, fmt.Errorf("thread count must be in range [1, %d]", maxThreads)
			}
			opt.Threads = t
			i++
		case "-vb":
			opt.Verbose = true
		case "-ts":
			opt.Tokens = true
		default:
			if strings.HasPrefix(args[i], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i])
			}
			positional = append(positional, args[i])
		}
	}

	if len(positional) == 0 {
		return opt, fmt.Errorf("expected an input source path")
	}
	if len(positional) > 1 {
		return opt, fmt.Errorf("expected exactly one input source path, got %d", len(positional))
	}
	opt.Src = positional[0]
	return opt, nil
}

func printHelp() {
	fmt.Println("akanec <input-path> [-o|--output <output-path>]")
	fmt.Println("  -o, --output <path>  output path for the emitted LLVM IR (default ./a.ll)")
	fmt.Println("  -t <n>               thread count, 1..64 (accepted for CLI compatibility)")
	fmt.Println("  -ts                  print the token stream and exit")
	fmt.Println("  -vb                  print the syntax tree before code generation")
	fmt.Println("  -h, --help           print this message and exit")
}
