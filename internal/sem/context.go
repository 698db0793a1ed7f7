// Package sem implements the interned semantic model: qualifiers, types
// and rank-indexed function families, built on a generic mutex-guarded
// Store[K, V].
package sem

import (
	"fmt"
	"sync"

	"akanec/internal/stack"
)

// Context owns every interning store for one compilation. Each store is
// mutex-guarded. The compiler uses a Context from a single goroutine; code
// generation only reads it, after all semantic analysis has finished.
type Context struct {
	// QualStack is the qualifier stack used while resolving names. The
	// bottom entry is always TopQualKey() and is never popped.
	QualStack *stack.Stack[QualKey]

	qualStore *Store[QualKey, *QualSem]
	tyStore   *Store[TyKey, *TySem]
	ty1Store  *Store[Ty1Key, *Ty1Sem]
	ty2Store  *Store[Ty2Key, *Ty2Sem]
	fnStore   *Store[FnKey, *FnSem]

	mu            sync.Mutex
	rankedFnStore map[FamilyKey][]*FnSem
	nextFnStore   map[FnKey]*FnSem
}

// TyKey identifies an interned TySem regardless of which variant it wraps.
type TyKey struct {
	Qual QualKey
	Name string
}

// NewContext builds a fresh context with the top qualifier and the
// language's built-in functions (negate, add, sub, mul, div, pipelineL)
// already registered over the i64 base type.
func NewContext() *Context {
	c := &Context{
		QualStack:     stack.New[QualKey](),
		qualStore:     NewStore[QualKey, *QualSem](),
		tyStore:       NewStore[TyKey, *TySem](),
		ty1Store:      NewStore[Ty1Key, *Ty1Sem](),
		ty2Store:      NewStore[Ty2Key, *Ty2Sem](),
		fnStore:       NewStore[FnKey, *FnSem](),
		rankedFnStore: make(map[FamilyKey][]*FnSem),
		nextFnStore:   make(map[FnKey]*FnSem),
	}
	c.internQual(TopQualKey())
	c.QualStack.Push(TopQualKey())
	c.registerBuiltins()
	return c
}

func (c *Context) internQual(key QualKey) *QualSem {
	return c.qualStore.InsertOrGet(key, func(id int) *QualSem {
		return &QualSem{ID: id, Key: key, Scopes: key.Scopes()}
	})
}

// Ty1 interns a base type named name at qual (e.g. "i64").
func (c *Context) Ty1(qual QualKey, name string) *TySem {
	ty1Key := Ty1Key{Qual: qual, Name: name}
	ty1 := c.ty1Store.InsertOrGet(ty1Key, func(id int) *Ty1Sem {
		return &Ty1Sem{ID: id, Qual: qual, Name: name}
	})
	tyKey := TyKey{Qual: qual, Name: name}
	return c.tyStore.InsertOrGet(tyKey, func(id int) *TySem {
		return &TySem{Ty1: ty1}
	})
}

// Arrow interns the arrow type `in -> out` at qual.
func (c *Context) Arrow(qual QualKey, in, out *TySem) *TySem {
	name := arrowName(in, out)
	ty2Key := Ty2Key{Qual: qual, Name: name}
	ty2 := c.ty2Store.InsertOrGet(ty2Key, func(id int) *Ty2Sem {
		return &Ty2Sem{ID: id, Qual: qual, Name: name, InTy: in, OutTy: out, Arity: out.Arity() + 1}
	})
	tyKey := TyKey{Qual: qual, Name: name}
	return c.tyStore.InsertOrGet(tyKey, func(id int) *TySem {
		return &TySem{Ty2: ty2}
	})
}

// arrowName builds the printed name of an arrow type, parenthesizing the
// left-hand side when it is itself an arrow (right-associativity).
func arrowName(in, out *TySem) string {
	inName := in.Name()
	if in.Ty2 != nil {
		inName = "(" + inName + ")"
	}
	return inName + " -> " + out.Name()
}

// DefaultTy synthesizes the type i64 -> i64 -> ... -> i64 with argCount
// arrows, used when a function definition carries no type annotation.
func (c *Context) DefaultTy(qual QualKey, argCount int) *TySem {
	i64 := c.Ty1(qual, "i64")
	ty := i64
	for i := 0; i < argCount; i++ {
		ty = c.Arrow(qual, i64, ty)
	}
	return ty
}

// SplitFnTy decomposes a (possibly zero-arity) function type into its
// ordered argument types and final return type.
func SplitFnTy(ty *TySem) (args []*TySem, ret *TySem) {
	for {
		in, ok := ty.InTy()
		if !ok {
			return args, ty
		}
		args = append(args, in)
		out, _ := ty.OutTy()
		ty = out
	}
}

// DefineFamily registers a brand new rank family named name at qual, with
// full type fullTy, and returns its head (rank 0). It fails if a family of
// that name already exists at that qualifier - used for top-level function
// definitions and argument bindings, where redefinition is a user error.
func (c *Context) DefineFamily(qual QualKey, name string, fullTy *TySem) (*FnSem, error) {
	return c.buildFamily(qual, name, fullTy, true)
}

// InternFamily returns the existing family named name at qual if one is
// already registered, otherwise builds and registers one. Used for
// built-ins and for integer literals, which are idempotently re-used every
// time the same literal text is seen.
func (c *Context) InternFamily(qual QualKey, name string, fullTy *TySem) *FnSem {
	fam, err := c.buildFamily(qual, name, fullTy, false)
	if err != nil {
		// buildFamily with strict=false never returns an error.
		panic(err)
	}
	return fam
}

func (c *Context) buildFamily(qual QualKey, name string, fullTy *TySem, strict bool) (*FnSem, error) {
	key := FamilyKey{Qual: qual, Name: name}

	c.mu.Lock()
	if existing, ok := c.rankedFnStore[key]; ok {
		c.mu.Unlock()
		if strict {
			return nil, fmt.Errorf("duplicate function %q in qualifier %s", name, qual)
		}
		return existing[0], nil
	}
	c.mu.Unlock()

	n := fullTy.Arity()
	members := make([]*FnSem, 0, n+1)
	ty := fullTy
	for rank := 0; rank <= n; rank++ {
		fnKey := FnKey{Qual: qual, Name: rankName(name, rank)}
		fs, err := c.fnStore.Insert(fnKey, func(id int) *FnSem {
			return &FnSem{ID: id, Qual: qual, Name: fnKey.Name, Ty: ty, Arity: n, Rank: rank}
		})
		if err != nil {
			return nil, err
		}
		members = append(members, fs)
		if out, ok := ty.OutTy(); ok {
			ty = out
		}
	}

	c.mu.Lock()
	c.rankedFnStore[key] = members
	for i := 0; i < len(members)-1; i++ {
		c.nextFnStore[members[i].Key()] = members[i+1]
	}
	c.mu.Unlock()

	return members[0], nil
}

// Family returns the full rank family registered under (qual, name).
func (c *Context) Family(qual QualKey, name string) ([]*FnSem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	members, ok := c.rankedFnStore[FamilyKey{Qual: qual, Name: name}]
	return members, ok
}

// NextRank returns the FnSem one rank beyond fn in its family, i.e. the
// result of applying fn to one more argument. ok is false if fn is already
// at its family's terminal rank.
func (c *Context) NextRank(fn *FnSem) (*FnSem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, ok := c.nextFnStore[fn.Key()]
	return next, ok
}

// LookupFamily searches the qualifier stack, top to bottom (innermost
// scope first), for a family named name, returning its head (rank 0).
func (c *Context) LookupFamily(name string) (*FnSem, bool) {
	for i := 1; i <= c.QualStack.Size(); i++ {
		qual, ok := c.QualStack.Get(i)
		if !ok {
			continue
		}
		if members, ok := c.Family(qual, name); ok && len(members) > 0 {
			return members[0], true
		}
	}
	return nil, false
}

// LookupTy1 searches the qualifier stack for a base type named name.
func (c *Context) LookupTy1(name string) (*TySem, bool) {
	for i := 1; i <= c.QualStack.Size(); i++ {
		qual, ok := c.QualStack.Get(i)
		if !ok {
			continue
		}
		if _, ok := c.ty1Store.Get(Ty1Key{Qual: qual, Name: name}); ok {
			if ty, ok := c.tyStore.Get(TyKey{Qual: qual, Name: name}); ok {
				return ty, true
			}
		}
	}
	return nil, false
}

// registerBuiltins installs the built-in function families at the top
// qualifier: negate: i64 -> i64; add, sub, mul, div: i64 -> i64 -> i64;
// pipelineL: (i64 -> i64 -> i64) -> i64 -> i64. All base types are pinned
// to i64 (see DESIGN.md for why no other base type is supported).
func (c *Context) registerBuiltins() {
	top := TopQualKey()
	i64 := c.Ty1(top, "i64")

	unary := c.Arrow(top, i64, i64)
	binary := c.Arrow(top, i64, unary)
	pipeline := c.Arrow(top, binary, unary)

	c.InternFamily(top, "negate", unary)
	c.InternFamily(top, "add", binary)
	c.InternFamily(top, "sub", binary)
	c.InternFamily(top, "mul", binary)
	c.InternFamily(top, "div", binary)
	c.InternFamily(top, "pipelineL", pipeline)
}
