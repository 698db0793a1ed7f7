// Package parser implements a hand-written recursive-descent parser over
// internal/lexer's token stream, producing the untyped syntax tree consumed
// by internal/semantize. Operator precedence and associativity are driven
// by the table in ops.go.
package parser

import (
	"akanec/internal/ast"
	"akanec/internal/diag"
	"akanec/internal/lexer"
)

// Parser holds one-token-lookahead state over a pre-scanned token slice.
type Parser struct {
	toks  []lexer.Token
	pos   int
	diags *diag.Bag
}

// New returns a Parser over toks, reporting syntax errors into diags.
func New(toks []lexer.Token, diags *diag.Bag) *Parser {
	return &Parser{toks: toks, diags: diags}
}

// Parse lexes and parses src in one call, returning the top-level function
// definitions and every diagnostic collected by either stage.
func Parse(src string) ([]*ast.Node, []diag.Diagnostic) {
	toks, lexDiags := lexer.Lex(src)

	bag := diag.NewBag()
	p := New(toks, bag)
	defs := p.parseProgram()
	bag.Close()

	all := make([]diag.Diagnostic, 0, len(lexDiags)+bag.Len())
	all = append(all, lexDiags...)
	all = append(all, bag.Items()...)
	return defs, all
}

func (p *Parser) parseProgram() []*ast.Node {
	var defs []*ast.Node
	for !p.atEnd() {
		before := p.pos
		if d := p.topDef(); d != nil {
			defs = append(defs, d)
		}
		if p.pos == before {
			// Nothing was consumed (e.g. first token can't start a
			// definition): force progress so recovery can't loop forever.
			p.advance()
		}
	}
	return defs
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *Parser) peek() (lexer.Token, bool) {
	if p.atEnd() {
		return lexer.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *Parser) advance() (lexer.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *Parser) check(k lexer.Kind) bool {
	t, ok := p.peek()
	return ok && t.Kind == k
}

func (p *Parser) checkOp(text string) bool {
	t, ok := p.peek()
	return ok && t.Kind == lexer.OpCode && t.Text == text
}

func (p *Parser) expect(k lexer.Kind, what string) (lexer.Token, bool) {
	t, ok := p.peek()
	if !ok || t.Kind != k {
		span := diag.Span{}
		if ok {
			span = t.Span
		}
		p.diags.Add(span, "expected %s", what)
		return lexer.Token{}, false
	}
	p.pos++
	return t, true
}

// recover resyncs past a syntactic failure by skipping forward to the next
// definition boundary: a terminating ';' (consumed, so the next top-level
// parse starts clean) or the 'fn'/'ty' that begins the next definition (left
// in place, so the next topDef call parses it normally). This keeps one
// malformed definition to exactly one diagnostic instead of cascading
// failures through whatever tokens are left of it.
func (p *Parser) recover() {
	for !p.atEnd() {
		if p.check(lexer.Semicolon) {
			p.advance()
			return
		}
		if p.check(lexer.FnKeyword) || p.check(lexer.TyKeyword) {
			return
		}
		p.advance()
	}
}

// topDef parses `fn-def ';'`.
func (p *Parser) topDef() *ast.Node {
	fn := p.fnDef()
	if fn == nil {
		p.recover()
		return nil
	}
	if _, ok := p.expect(lexer.Semicolon, "';'"); !ok {
		p.recover()
		return nil
	}
	return fn
}

// fnDef parses `('ty' ty-expr)? 'fn' left-fn-def '=' expr`.
func (p *Parser) fnDef() *ast.Node {
	start, ok := p.peek()
	if !ok {
		return nil
	}

	var typeAnn *ast.Node
	if p.check(lexer.TyKeyword) {
		p.advance()
		typeAnn = p.typeExpr()
		if typeAnn == nil {
			return nil
		}
	}

	if _, ok := p.expect(lexer.FnKeyword, "'fn'"); !ok {
		return nil
	}

	name, args, ok := p.leftFnDef()
	if !ok {
		return nil
	}

	if _, ok := p.expect(lexer.Equal, "'='"); !ok {
		return nil
	}

	body := p.expr(0)
	if body == nil {
		return nil
	}

	return &ast.Node{
		Typ:      ast.FnDef,
		Data:     name,
		Args:     args,
		Children: []*ast.Node{typeAnn, body},
		Span:     diag.Join(start.Span, body.Span),
	}
}

// leftFnDef parses `IDENT IDENT*`: the function name followed by its
// argument names.
func (p *Parser) leftFnDef() (string, []string, bool) {
	nameTok, ok := p.expect(lexer.Ident, "function name")
	if !ok {
		return "", nil, false
	}
	var args []string
	for p.check(lexer.Ident) {
		t, _ := p.advance()
		args = append(args, t.Text)
	}
	return nameTok.Text, args, true
}

// typeExpr parses `ty-term ('->' ty-expr)?`, right-associative.
func (p *Parser) typeExpr() *ast.Node {
	lhs := p.tyTerm()
	if lhs == nil {
		return nil
	}
	if p.check(lexer.Arrow) {
		p.advance()
		rhs := p.typeExpr()
		if rhs == nil {
			return nil
		}
		return &ast.Node{
			Typ:      ast.TypeArrow,
			Children: []*ast.Node{lhs, rhs},
			Span:     diag.Join(lhs.Span, rhs.Span),
		}
	}
	return lhs
}

// tyTerm parses `'(' ty-expr ')' | IDENT`.
func (p *Parser) tyTerm() *ast.Node {
	if p.check(lexer.LParen) {
		open, _ := p.advance()
		inner := p.typeExpr()
		if inner == nil {
			return nil
		}
		closeTok, ok := p.expect(lexer.RParen, "')'")
		if !ok {
			return nil
		}
		inner.Span = diag.Join(open.Span, closeTok.Span)
		return inner
	}
	t, ok := p.expect(lexer.Ident, "type name")
	if !ok {
		return nil
	}
	return &ast.Node{Typ: ast.TypeIdent, Data: t.Text, Span: t.Span}
}

// expr parses an expression via precedence climbing: unary operand, then a
// loop of infix operators whose precedence is at least minPrec. This
// respects the operator precedence/associativity table in ops.go, needed to
// parse e.g. `a*b + c*d` correctly (mul must bind tighter than add).
func (p *Parser) expr(minPrec int) *ast.Node {
	lhs := p.unary()
	if lhs == nil {
		return nil
	}
	for {
		t, ok := p.peek()
		if !ok || t.Kind != lexer.OpCode {
			break
		}
		info, found := lookupInfix(t.Text)
		if !found || info.prec < minPrec {
			break
		}
		p.advance()
		nextMin := info.prec + 1
		if info.rightAssoc {
			nextMin = info.prec
		}
		rhs := p.expr(nextMin)
		if rhs == nil {
			return nil
		}
		lhs = desugarInfix(info.fn, lhs, rhs)
	}
	return lhs
}

// desugarInfix rewrites an infix operator application into plain function
// application: Apply(Apply(Ident(fnName), lhs), rhs).
func desugarInfix(fnName string, lhs, rhs *ast.Node) *ast.Node {
	fnNode := &ast.Node{Typ: ast.ExprIdent, Data: fnName, Span: lhs.Span}
	inner := &ast.Node{
		Typ:      ast.ExprApply,
		Children: []*ast.Node{fnNode, lhs},
		Span:     lhs.Span,
	}
	return &ast.Node{
		Typ:      ast.ExprApply,
		Children: []*ast.Node{inner, rhs},
		Span:     diag.Join(lhs.Span, rhs.Span),
	}
}

// unary parses `prefix? term`, where prefix is '-'.
func (p *Parser) unary() *ast.Node {
	if p.checkOp("-") {
		minus, _ := p.advance()
		operand := p.unary()
		if operand == nil {
			return nil
		}
		fnNode := &ast.Node{Typ: ast.ExprIdent, Data: "negate", Span: minus.Span}
		return &ast.Node{
			Typ:      ast.ExprApply,
			Children: []*ast.Node{fnNode, operand},
			Span:     diag.Join(minus.Span, operand.Span),
		}
	}
	return p.term()
}

// term parses `factor factor*`: juxtaposition is left-associative
// application.
func (p *Parser) term() *ast.Node {
	fn := p.factor()
	if fn == nil {
		return nil
	}
	for p.startsFactor() {
		arg := p.factor()
		if arg == nil {
			return nil
		}
		fn = &ast.Node{
			Typ:      ast.ExprApply,
			Children: []*ast.Node{fn, arg},
			Span:     diag.Join(fn.Span, arg.Span),
		}
	}
	return fn
}

func (p *Parser) startsFactor() bool {
	t, ok := p.peek()
	if !ok {
		return false
	}
	return t.Kind == lexer.LParen || t.Kind == lexer.Ident || t.Kind == lexer.Int
}

// factor parses `'(' expr ')' | IDENT | INT`.
func (p *Parser) factor() *ast.Node {
	t, ok := p.peek()
	if !ok {
		p.diags.Add(diag.Span{}, "expected expression, got end of input")
		return nil
	}
	switch t.Kind {
	case lexer.LParen:
		open, _ := p.advance()
		inner := p.expr(0)
		if inner == nil {
			return nil
		}
		closeTok, ok := p.expect(lexer.RParen, "')'")
		if !ok {
			return nil
		}
		inner.Span = diag.Join(open.Span, closeTok.Span)
		return inner
	case lexer.Ident, lexer.Int:
		p.advance()
		return &ast.Node{Typ: ast.ExprIdent, Data: t.Text, Span: t.Span}
	default:
		p.diags.Add(t.Span, "expected expression, got %q", t.Text)
		return nil
	}
}
