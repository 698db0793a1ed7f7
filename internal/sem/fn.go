package sem

import "fmt"

// FnKey identifies one rank of a function family: the bare name suffixed
// with "..<rank>", at a qualifier.
type FnKey struct {
	Qual QualKey
	Name string // e.g. "add..0"
}

// FamilyKey identifies a whole rank family by its bare (unsuffixed) name.
type FamilyKey struct {
	Qual QualKey
	Name string // e.g. "add"
}

// FnSem is one rank of a curried function family: a top-level definition,
// a builtin, a bound argument, or an integer literal all end up as one or
// more FnSem entries. Rank 0 is the head of the family (fully unapplied);
// rank == Arity is the terminal, fully-saturated rank.
type FnSem struct {
	ID    int
	Qual  QualKey
	Name  string // display name, "<base>..<rank>"
	Ty    *TySem // the type of this rank: Arity-Rank remaining arrows
	Arity int    // total arity of the family
	Rank  int
}

// Key returns the FnKey this FnSem is registered under.
func (f *FnSem) Key() FnKey {
	return FnKey{Qual: f.Qual, Name: f.Name}
}

func rankName(base string, rank int) string {
	return fmt.Sprintf("%s..%d", base, rank)
}
