// Command akanec compiles source files written in the curried, rank-indexed
// function language into textual LLVM IR: parse flags, read source, run
// pipeline stages, report diagnostics, propagate an exit code. The pipeline
// is single-threaded and synchronous, so there is no output-writer
// goroutine - there is exactly one artifact to write, once, at the end.
package main

import (
	"fmt"
	"os"

	"akanec/internal/ast"
	"akanec/internal/cli"
	"akanec/internal/codegen/llvmir"
	"akanec/internal/diag"
	"akanec/internal/lexer"
	"akanec/internal/parser"
	"akanec/internal/sem"
	"akanec/internal/semantize"
	"akanec/internal/source"
)

func main() {
	opt, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Printf("akanec: %s\n", err)
		os.Exit(1)
	}

	if err := run(opt); err != nil {
		fmt.Printf("akanec: %s\n", err)
		os.Exit(1)
	}
}

// run executes the full read -> lex/parse -> semantize -> codegen -> write
// pipeline. Diagnostics from every stage are collected and reported
// together at the end, rather than aborting at the first failing stage: a
// malformed definition must not prevent its well-formed siblings from
// reaching the output.
func run(opt cli.Options) error {
	src, err := source.Read(opt.Src)
	if err != nil {
		return fmt.Errorf("could not read source: %s", err)
	}

	if opt.Tokens {
		printTokenStream(src)
		return nil
	}

	defs, diags := parser.Parse(src)

	ctx := sem.NewContext()
	semBag := diag.NewBag()
	semantize.New(ctx, semBag).Run(defs)
	semBag.Close()
	diags = append(diags, semBag.Items()...)

	if opt.Verbose {
		for _, d := range defs {
			printNode(d, 0)
		}
	}

	ir, genDiags := llvmir.GenModule(ctx, defs, moduleName(opt.Src))
	diags = append(diags, genDiags...)

	if werr := os.WriteFile(opt.Out, []byte(ir), 0o644); werr != nil {
		return fmt.Errorf("could not write output: %s", werr)
	}

	for _, d := range diags {
		fmt.Printf("%s: %s\n", d.Span, d.Msg)
	}
	if len(diags) > 0 {
		fmt.Printf("%d error(s) found\n", len(diags))
		os.Exit(1)
	}
	return nil
}

// printTokenStream implements the -ts flag: lex src and print one token per
// line, then return (the driver exits 0 regardless of lexical diagnostics).
func printTokenStream(src string) {
	toks, diags := lexer.Lex(src)
	for _, t := range toks {
		fmt.Printf("%s %q (%s)\n", t.Kind, t.Text, t.Span)
	}
	for _, d := range diags {
		fmt.Printf("%s: %s\n", d.Span, d.Msg)
	}
}

// printNode implements the -vb flag's syntax tree dump.
func printNode(n *ast.Node, depth int) {
	n.Print(depth)
}

func moduleName(path string) string {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			base = path[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}
