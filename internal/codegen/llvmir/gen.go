// gen.go implements the per-family and per-wrapper emission rules: every
// function in a family is declared before any body is defined, so a rank's
// body can forward-reference the next rank's address, and each rank is a
// uniform (ptr,ptr)->ptr function.
package llvmir

import (
	"strconv"

	"tinygo.org/x/go-llvm"

	"akanec/internal/ast"
	"akanec/internal/diag"
	"akanec/internal/sem"
)

// terminalFn builds the body of a family's terminal (fully saturated) rank.
// args are the thunk-pointer values bound to each of the family's
// parameters, in order. The returned value must already be of the generic
// ptr type, ready to feed directly into llvm.Builder.CreateRet.
type terminalFn func(self llvm.Value, args []llvm.Value) llvm.Value

// generator walks a semantized AST and emits one LLVM module.
type generator struct {
	ctx   *sem.Context
	b     *Builder
	rt    *runtimeFns
	diags *diag.Bag

	funcs map[sem.FnKey]llvm.Value // every declared rank function, by its family-rank key
}

// GenModule emits textual LLVM IR for defs (already walked by
// internal/semantize) into a module named moduleName. It returns the IR
// text and every diagnostic raised during emission.
func GenModule(ctx *sem.Context, defs []*ast.Node, moduleName string) (string, []diag.Diagnostic) {
	b := NewBuilder(moduleName)
	defer b.Dispose()

	g := &generator{
		ctx:   ctx,
		b:     b,
		rt:    declareRuntime(b),
		diags: diag.NewBag(),
		funcs: make(map[sem.FnKey]llvm.Value),
	}

	g.genBuiltins()
	for _, def := range defs {
		if def.FnKey == nil {
			// The definition failed semantic analysis; its diagnostic was
			// already recorded by the semantizer.
			continue
		}
		g.genUserFn(def)
	}

	ir := b.String()
	g.diags.Close()
	return ir, g.diags.Items()
}

// genBuiltins emits the 6 language built-ins in rank-chain form.
func (g *generator) genBuiltins() {
	top := sem.TopQualKey()

	arith := []string{"add", "sub", "mul", "div"}
	for _, name := range arith {
		members, ok := g.ctx.Family(top, name)
		if !ok {
			continue
		}
		g.genFamily(members, g.genArithBody(name))
	}

	if members, ok := g.ctx.Family(top, "negate"); ok {
		g.genFamily(members, g.genNegateBody)
	}
	if members, ok := g.ctx.Family(top, "pipelineL"); ok {
		g.genFamily(members, g.genPipelineLBody)
	}
}

// genArithBody builds the terminal body for one of add/sub/mul/div.
func (g *generator) genArithBody(op string) terminalFn {
	return func(_ llvm.Value, args []llvm.Value) llvm.Value {
		lhs := g.b.valueOf(args[0])
		rhs := g.b.valueOf(args[1])
		var res llvm.Value
		switch op {
		case "add":
			res = g.b.IR.CreateAdd(lhs, rhs, g.b.name("add.r"))
		case "sub":
			res = g.b.IR.CreateSub(lhs, rhs, g.b.name("sub.r"))
		case "mul":
			res = g.b.IR.CreateMul(lhs, rhs, g.b.name("mul.r"))
		case "div":
			res = g.b.IR.CreateSDiv(lhs, rhs, g.b.name("div.r"))
		}
		return g.b.newValThunk(g.rt, res)
	}
}

func (g *generator) genNegateBody(_ llvm.Value, args []llvm.Value) llvm.Value {
	operand := g.b.valueOf(args[0])
	zero := llvm.ConstInt(g.b.i64, 0, true)
	res := g.b.IR.CreateSub(zero, operand, g.b.name("negate.r"))
	return g.b.newValThunk(g.rt, res)
}

// genPipelineLBody implements the left-pipe operator: call lhs with rhs,
// then force the result only if that application saturated lhs's family -
// decided at runtime by branching on whether the intermediate thunk's
// arity == rank.
func (g *generator) genPipelineLBody(fn llvm.Value, args []llvm.Value) llvm.Value {
	originBB := g.b.IR.GetInsertBlock()

	lhs := g.b.asPtr(args[0])
	rhs := g.b.asPtr(args[1])
	result := g.b.callThunk(g.rt, lhs, rhs)
	resultThunk := g.b.asThunkPtr(result)

	arity := g.b.IR.CreateLoad(g.b.fieldPtr(resultThunk, fieldArity, "arityptr"), g.b.name("pipeline.arity"))
	rank := g.b.IR.CreateLoad(g.b.fieldPtr(resultThunk, fieldRank, "rankptr"), g.b.name("pipeline.rank"))
	saturated := g.b.IR.CreateICmp(llvm.IntEQ, arity, rank, g.b.name("pipeline.saturated"))

	satBB := llvm.AddBasicBlock(fn, g.b.name("pipeline.sat"))
	doneBB := llvm.AddBasicBlock(fn, g.b.name("pipeline.done"))
	g.b.IR.CreateCondBr(saturated, satBB, doneBB)

	g.b.IR.SetInsertPointAtEnd(satBB)
	forced := g.b.callThunk(g.rt, result, g.b.nullPtr())
	g.b.IR.CreateBr(doneBB)

	g.b.IR.SetInsertPointAtEnd(doneBB)
	phi := g.b.IR.CreatePHI(g.b.ptr, g.b.name("pipeline.result"))
	phi.AddIncoming([]llvm.Value{forced, result}, []llvm.BasicBlock{satBB, originBB})
	return phi
}

// genFamily declares and defines every rank of members: rank k's body
// returns a __new_next_fn_thunk pointing at rank k+1, and the terminal
// rank's body is built by terminal.
func (g *generator) genFamily(members []*sem.FnSem, terminal terminalFn) []llvm.Value {
	n := len(members) - 1
	fns := make([]llvm.Value, len(members))
	for i, m := range members {
		ft := g.b.thunkFnType()
		fn := llvm.AddFunction(g.b.Mod, m.Name, ft)
		fn.Param(0).SetName(g.b.name("self"))
		fn.Param(1).SetName(g.b.name("arg"))
		fns[i] = fn
		g.funcs[m.Key()] = fn
	}

	for k := 0; k <= n; k++ {
		fn := fns[k]
		bb := llvm.AddBasicBlock(fn, g.b.name("entry"))
		g.b.IR.SetInsertPointAtEnd(bb)

		self := fn.Param(0)
		arg := fn.Param(1)

		if k < n {
			nextAddr := g.b.asPtr(fns[k+1])
			next := g.b.newNextFnThunk(g.rt, self, nextAddr, arg)
			g.b.IR.CreateRet(next)
		} else {
			selfThunk := g.b.asThunkPtr(self)
			argsField := g.b.IR.CreateLoad(g.b.fieldPtr(selfThunk, fieldArgs, "argsfield"), g.b.name("args"))
			args := make([]llvm.Value, n)
			for i := 0; i < n; i++ {
				args[i] = g.b.loadThunkArg(argsField, i)
			}
			g.b.IR.CreateRet(terminal(fn, args))
		}

		g.verifyMember(members[k], fn)
	}
	return fns
}

// genUserFn emits the rank chain and the exported wrapper for one
// top-level, already-semantized function definition.
func (g *generator) genUserFn(def *ast.Node) {
	qual := def.FnKey.Qual
	name := def.Name()
	members, ok := g.ctx.Family(qual, name)
	if !ok {
		g.diags.Add(def.Span, "internal error: no family registered for %s", name)
		return
	}

	body := def.Children[1]
	fns := g.genFamily(members, g.genUserBody(def, body))
	g.genExportedWrapper(def, members, fns)
}

// genUserBody builds the terminal-rank body for a user function: bind each
// argument name to its loaded thunk, then translate the body expression.
func (g *generator) genUserBody(def *ast.Node, body *ast.Node) terminalFn {
	return func(_ llvm.Value, args []llvm.Value) llvm.Value {
		named := make(map[string]llvm.Value, len(def.Args))
		for i, argName := range def.Args {
			if _, exists := named[argName]; exists {
				g.diags.Add(def.Span, "Duplicate identifier name")
				continue
			}
			named[argName] = args[i]
		}
		result := g.genExpr(body, named)
		return g.b.asPtr(result)
	}
}

// genExpr translates an expression node to a thunk-pointer value.
func (g *generator) genExpr(n *ast.Node, named map[string]llvm.Value) llvm.Value {
	switch n.Typ {
	case ast.ExprIdent:
		return g.genIdent(n, named)
	case ast.ExprApply:
		return g.genApply(n, named)
	default:
		return g.b.asThunkPtr(g.b.nullPtr())
	}
}

// genIdent handles the 3 identifier cases: integer literal, bound argument,
// and named-function reference.
func (g *generator) genIdent(n *ast.Node, named map[string]llvm.Value) llvm.Value {
	text := n.Name()
	if isNonNegativeInt(text) {
		v, _ := strconv.ParseInt(text, 10, 64)
		c := llvm.ConstInt(g.b.i64, uint64(v), false)
		vt := g.b.newValThunk(g.rt, c)
		return g.b.asThunkPtr(vt)
	}

	if v, ok := named[text]; ok {
		return v
	}

	fn := n.Fn // resolved by the semantizer to the family head (rank 0)
	target, ok := g.funcs[fn.Key()]
	if !ok {
		g.diags.Add(n.Span, "internal error: function %s not declared in module", fn.Name)
		return g.b.asThunkPtr(g.b.nullPtr())
	}
	wrapped := g.b.newFnThunk(g.rt, g.b.asPtr(target), fn.Arity)
	if fn.Arity == 0 {
		wrapped = g.b.callThunk(g.rt, wrapped, g.b.nullPtr())
	}
	return g.b.asThunkPtr(wrapped)
}

// genApply handles function application, forcing the result to a value
// thunk if this application saturated the callee's family.
func (g *generator) genApply(n *ast.Node, named map[string]llvm.Value) llvm.Value {
	callee := g.genExpr(n.Children[0], named)
	arg := g.genExpr(n.Children[1], named)

	result := g.b.callThunk(g.rt, g.b.asPtr(callee), g.b.asPtr(arg))
	if n.Fn != nil && n.Fn.Rank == n.Fn.Arity {
		forced := g.b.callThunk(g.rt, result, g.b.nullPtr())
		return g.b.asThunkPtr(forced)
	}
	return g.b.asThunkPtr(result)
}

// genExportedWrapper emits the `(i64 x n) -> i64` wrapper, named exactly
// after the user's unranked function name.
func (g *generator) genExportedWrapper(def *ast.Node, members []*sem.FnSem, fns []llvm.Value) {
	n := len(members) - 1
	name := def.Name()

	ft := g.b.wrapperFnType(n)
	wrapper := llvm.AddFunction(g.b.Mod, name, ft)
	for i, argName := range def.Args {
		wrapper.Param(i).SetName(g.b.name(argName))
	}

	bb := llvm.AddBasicBlock(wrapper, g.b.name("entry"))
	g.b.IR.SetInsertPointAtEnd(bb)

	current := g.b.newFnThunk(g.rt, g.b.asPtr(fns[0]), n)
	for i := 0; i < n; i++ {
		valThunk := g.b.newValThunk(g.rt, wrapper.Param(i))
		current = g.b.callThunk(g.rt, current, valThunk)
	}
	final := g.b.callThunk(g.rt, current, g.b.nullPtr())
	finalThunk := g.b.asThunkPtr(final)
	result := g.b.valueOf(finalThunk)
	g.b.IR.CreateRet(result)

	g.verifyStandalone(wrapper)
}

// verifyMember runs LLVM's function verifier on a family-rank function,
// deleting it and recording a diagnostic on failure.
func (g *generator) verifyMember(m *sem.FnSem, fn llvm.Value) {
	if llvm.VerifyFunction(fn, llvm.ReturnStatusAction) {
		g.diags.Add(diag.Span{}, "LLVM verification failed for function %s", m.Name)
		delete(g.funcs, m.Key())
		fn.EraseFromParentAsFunction()
	}
}

// verifyStandalone runs the verifier on a function not tracked in g.funcs
// (the exported wrapper).
func (g *generator) verifyStandalone(fn llvm.Value) {
	if llvm.VerifyFunction(fn, llvm.ReturnStatusAction) {
		name := fn.Name()
		g.diags.Add(diag.Span{}, "LLVM verification failed for function %s", name)
		fn.EraseFromParentAsFunction()
	}
}

func isNonNegativeInt(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}
