package ast

import "fmt"

// Print writes an indented dump of the tree rooted at n to stdout, for the
// driver's -vb flag.
func (n *Node) Print(depth int) {
	if n == nil {
		return
	}
	for i := 0; i < depth; i++ {
		fmt.Print("  ")
	}
	switch n.Typ {
	case FnDef:
		fmt.Printf("%s %s%v\n", n.Typ, n.Name(), n.Args)
	case TypeIdent, ExprIdent:
		fmt.Printf("%s %q\n", n.Typ, n.Name())
	default:
		fmt.Printf("%s\n", n.Typ)
	}
	for _, c := range n.Children {
		c.Print(depth + 1)
	}
}
