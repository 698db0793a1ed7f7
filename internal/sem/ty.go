package sem

// Ty1Key and Ty1Sem model a base (nullary) type, e.g. i64.
type Ty1Key struct {
	Qual QualKey
	Name string
}

type Ty1Sem struct {
	ID   int
	Qual QualKey
	Name string
}

// Ty2Key and Ty2Sem model an arrow type in -> out.
type Ty2Key struct {
	Qual QualKey
	Name string // the printed arrow name, e.g. "i64 -> i64"
}

type Ty2Sem struct {
	ID    int
	Qual  QualKey
	Name  string
	InTy  *TySem
	OutTy *TySem
	Arity int // OutTy.Arity() + 1
}

// TySem is the sum type Ty1 | Ty2. Exactly one of Ty1/Ty2 is non-nil.
//
// TySem values are always interned through Context.tyStore keyed on (qual,
// printed name), so two calls that would build "the same" type return the
// same *TySem pointer, and plain pointer equality is both correct and all
// that callers use.
type TySem struct {
	Ty1 *Ty1Sem
	Ty2 *Ty2Sem
}

// Name returns the type's printed name.
func (t *TySem) Name() string {
	if t.Ty2 != nil {
		return t.Ty2.Name
	}
	return t.Ty1.Name
}

// Arity returns the number of arrows in the type, i.e. how many arguments
// a function of this type still expects. A base type has arity 0.
func (t *TySem) Arity() int {
	if t.Ty2 != nil {
		return t.Ty2.Arity
	}
	return 0
}

// OutTy returns the result type of an arrow type. ok is false for a base
// type, which has no result type to peel off.
func (t *TySem) OutTy() (*TySem, bool) {
	if t.Ty2 == nil {
		return nil, false
	}
	return t.Ty2.OutTy, true
}

// InTy returns the argument type of an arrow type. ok is false for a base
// type.
func (t *TySem) InTy() (*TySem, bool) {
	if t.Ty2 == nil {
		return nil, false
	}
	return t.Ty2.InTy, true
}
