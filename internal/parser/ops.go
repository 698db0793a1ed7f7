package parser

// opInfo describes one infix operator's desugaring: its precedence,
// associativity and the builtin function name it expands to. A flat table
// indexed by operator text, rather than a hand-written if/else chain.
type opInfo struct {
	text       string
	fn         string
	prec       int
	rightAssoc bool
}

// infixOps is ordered by nothing in particular; lookupInfix scans it, which
// is fine for a half-dozen operators.
var infixOps = []opInfo{
	{text: "*", fn: "mul", prec: 6},
	{text: "/", fn: "div", prec: 6},
	{text: "+", fn: "add", prec: 5},
	{text: "-", fn: "sub", prec: 5},
	{text: "<|", fn: "pipelineL", prec: 1, rightAssoc: true},
}

func lookupInfix(text string) (opInfo, bool) {
	for _, o := range infixOps {
		if o.text == text {
			return o, true
		}
	}
	return opInfo{}, false
}
