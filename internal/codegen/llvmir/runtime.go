package llvmir

import "tinygo.org/x/go-llvm"

// runtimeFns holds the five forward-declared external runtime symbols. The
// generator never defines these; the runtime linked in at build time
// provides the bodies.
type runtimeFns struct {
	newFnThunk     llvm.Value // __new_fn_thunk(fn_ptr: ptr, arity: i64) -> ptr
	newNextFnThunk llvm.Value // __new_next_fn_thunk(thunk: ptr, fn_ptr: ptr, arg: ptr) -> ptr
	newValThunk    llvm.Value // __new_val_thunk(val: i64) -> ptr
	callThunk      llvm.Value // __call_thunk(thunk: ptr, arg: ptr) -> ptr
	debugPrint     llvm.Value // __debug_print(thunk: ptr) -> void
}

// declareRuntime emits the five external declarations into b's module.
func declareRuntime(b *Builder) *runtimeFns {
	declare := func(name string, ret llvm.Type, params ...llvm.Type) llvm.Value {
		ft := llvm.FunctionType(ret, params, false)
		return llvm.AddFunction(b.Mod, name, ft)
	}

	return &runtimeFns{
		newFnThunk:     declare("__new_fn_thunk", b.ptr, b.ptr, b.i64),
		newNextFnThunk: declare("__new_next_fn_thunk", b.ptr, b.ptr, b.ptr, b.ptr),
		newValThunk:    declare("__new_val_thunk", b.ptr, b.i64),
		callThunk:      declare("__call_thunk", b.ptr, b.ptr, b.ptr),
		debugPrint:     declare("__debug_print", llvm.VoidType(), b.ptr),
	}
}

// newFnThunk calls __new_fn_thunk(fnAddr, arity).
func (b *Builder) newFnThunk(rt *runtimeFns, fnAddr llvm.Value, arity int) llvm.Value {
	arityVal := llvm.ConstInt(b.i64, uint64(arity), false)
	return b.IR.CreateCall(rt.newFnThunk, []llvm.Value{fnAddr, arityVal}, b.name("fnthunk"))
}

// newNextFnThunk calls __new_next_fn_thunk(prev, nextFnAddr, arg).
func (b *Builder) newNextFnThunk(rt *runtimeFns, prev, nextFnAddr, arg llvm.Value) llvm.Value {
	return b.IR.CreateCall(rt.newNextFnThunk, []llvm.Value{prev, nextFnAddr, arg}, b.name("nextthunk"))
}

// newValThunk calls __new_val_thunk(val).
func (b *Builder) newValThunk(rt *runtimeFns, val llvm.Value) llvm.Value {
	return b.IR.CreateCall(rt.newValThunk, []llvm.Value{val}, b.name("valthunk"))
}

// callThunk calls __call_thunk(thunk, arg). Pass a null ptr for arg to
// force evaluation of an already-saturated thunk.
func (b *Builder) callThunk(rt *runtimeFns, thunk, arg llvm.Value) llvm.Value {
	return b.IR.CreateCall(rt.callThunk, []llvm.Value{thunk, arg}, b.name("call"))
}

// nullPtr returns the generic-pointer null constant.
func (b *Builder) nullPtr() llvm.Value {
	return llvm.ConstPointerNull(b.ptr)
}
