package lexer

// reservedWord pairs a keyword's spelling with the Kind it lexes to.
type reservedWord struct {
	val string
	typ Kind
}

// rw holds the language's reserved words, bucketed by length: indexing by
// length and scanning the (short) bucket beats a map for a two-keyword
// language.
var rw = [...][]reservedWord{
	// One-grams
	{},
	// Two-grams
	{
		{val: "ty", typ: TyKeyword},
		{val: "fn", typ: FnKeyword},
	},
}

// isKeyword reports whether s is a reserved word, and its Kind if so.
func isKeyword(s string) (bool, Kind) {
	if len(s) == 0 || len(s) > len(rw) {
		return false, Ident
	}
	for _, e := range rw[len(s)-1] {
		if e.val == s {
			return true, e.typ
		}
	}
	return false, Ident
}
