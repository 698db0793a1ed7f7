// Package llvmir is a thin LLVM IR builder wrapper: a narrow adapter over
// tinygo.org/x/go-llvm exposing only the operations the code generator
// actually uses, with one obvious owner for the resource-ownership chain
// (context -> module -> builder, released in reverse).
package llvmir

import (
	"tinygo.org/x/go-llvm"
)

// Builder owns one LLVM context/module/builder triple for a single
// compilation unit, plus the thunk struct type every function signature is
// built from.
type Builder struct {
	Ctx llvm.Context
	Mod llvm.Module
	IR  llvm.Builder

	pool *pool

	i64     llvm.Type
	ptr     llvm.Type // i8*, the generic pointer type used at ABI boundaries
	thunkTy llvm.Type // the named {fn_ptr, arity, rank, args} struct
	thunkPt llvm.Type // pointer to thunkTy
}

// NewBuilder allocates a fresh context, module and builder, named moduleName.
func NewBuilder(moduleName string) *Builder {
	ctx := llvm.NewContext()
	mod := ctx.NewModule(moduleName)
	ir := ctx.NewBuilder()

	i64 := llvm.Int64Type()
	i8 := llvm.Int8Type()
	ptrTy := llvm.PointerType(i8, 0)

	thunkTy := llvm.StructType([]llvm.Type{ptrTy, i64, i64, ptrTy}, false)
	thunkPt := llvm.PointerType(thunkTy, 0)

	return &Builder{
		Ctx:     ctx,
		Mod:     mod,
		IR:      ir,
		pool:    newPool(),
		i64:     i64,
		ptr:     ptrTy,
		thunkTy: thunkTy,
		thunkPt: thunkPt,
	}
}

// Dispose releases the builder's resources in hierarchical order: builder,
// then module, then context.
func (b *Builder) Dispose() {
	b.IR.Dispose()
	b.Mod.Dispose()
	b.Ctx.Dispose()
}

// String renders the module as textual LLVM IR.
func (b *Builder) String() string {
	return b.Mod.String()
}

// name interns s through the builder's pool before handing it to the IR API.
func (b *Builder) name(s string) string {
	return b.pool.name(s)
}

// thunkFnType is the uniform signature every family-rank function shares:
// (ptr, ptr) -> ptr.
func (b *Builder) thunkFnType() llvm.Type {
	return llvm.FunctionType(b.ptr, []llvm.Type{b.ptr, b.ptr}, false)
}

// wrapperFnType builds the exported-wrapper signature for a user function
// of arity n: (i64 x n) -> i64.
func (b *Builder) wrapperFnType(arity int) llvm.Type {
	params := make([]llvm.Type, arity)
	for i := range params {
		params[i] = b.i64
	}
	return llvm.FunctionType(b.i64, params, false)
}

// asThunkPtr bit-casts a generic ptr value to the typed thunk-pointer type
// so its fields can be addressed with a struct GEP.
func (b *Builder) asThunkPtr(v llvm.Value) llvm.Value {
	return b.IR.CreateBitCast(v, b.thunkPt, b.name("as.thunk"))
}

// asPtr bit-casts a typed thunk-pointer value back to the generic ptr type
// used at every ABI boundary.
func (b *Builder) asPtr(v llvm.Value) llvm.Value {
	return b.IR.CreateBitCast(v, b.ptr, b.name("as.ptr"))
}

// Thunk struct field indices: {fn_ptr, arity, rank, args} in that order.
const (
	fieldFnPtr = 0
	fieldArity = 1
	fieldRank  = 2
	fieldArgs  = 3
)

// fieldPtr returns a pointer to field index idx of the thunk pointed to by
// thunkPtr (which must already be of type b.thunkPt).
func (b *Builder) fieldPtr(thunkPtr llvm.Value, idx int, label string) llvm.Value {
	zero := llvm.ConstInt(llvm.Int32Type(), 0, false)
	fi := llvm.ConstInt(llvm.Int32Type(), uint64(idx), false)
	return b.IR.CreateGEP(thunkPtr, []llvm.Value{zero, fi}, b.name(label))
}

// valueOf loads the i64 scalar out of a value thunk. Value thunks are
// terminal (rank == arity == 0), so their scalar is stored in the same
// field slot a function thunk uses for its rank counter.
func (b *Builder) valueOf(v llvm.Value) llvm.Value {
	thunk := b.asThunkPtr(v)
	p := b.fieldPtr(thunk, fieldRank, "valfield")
	return b.IR.CreateLoad(p, b.name("val"))
}

// loadThunkArg reads element i out of a thunk's loaded args buffer
// (argsField, the generic ptr loaded from a thunk's fieldArgs slot),
// returning it as a generic ptr ready to feed into another thunk call.
func (b *Builder) loadThunkArg(argsField llvm.Value, i int) llvm.Value {
	elemPtrTy := llvm.PointerType(b.ptr, 0)
	base := b.IR.CreateBitCast(argsField, elemPtrTy, b.name("args.base"))
	idx := llvm.ConstInt(llvm.Int32Type(), uint64(i), false)
	elemAddr := b.IR.CreateGEP(base, []llvm.Value{idx}, b.name("arg.addr"))
	loaded := b.IR.CreateLoad(elemAddr, b.name("arg.raw"))
	return b.asPtr(loaded)
}
