// Package lexer scans source text into a flat token slice using a stateFunc
// state machine walking the input rune by rune. Lex runs synchronously and
// returns the full token slice up front; there is no concurrent producer or
// consumer involved.
package lexer

import (
	"strings"
	"unicode/utf8"

	"akanec/internal/diag"
)

// stateFunc is one step of the lexer's state machine.
type stateFunc func(*lexer) stateFunc

const eof = 0

// opChars is the maximal-munch character class for operator codes.
const opChars = "!#$%&*+./<=>?@\\^|-~"

// lexer walks the input string emitting Tokens into its own tokens slice.
type lexer struct {
	input     string
	start     int // byte offset of the start of the token being built
	pos       int // byte offset of the scan head
	width     int // width in bytes of the last rune returned by next
	line      int // current line, 1-based
	lineStart int // byte offset of the start of the current line

	tokens []Token
	diags  *diag.Bag
}

// Lex scans src into a slice of Tokens and returns any lexical diagnostics
// collected along the way (recoverable: scanning continues past an invalid
// character). A synthetic trailing Semicolon is appended when src is
// non-empty and does not already end in one.
func Lex(src string) ([]Token, []diag.Diagnostic) {
	l := &lexer{input: src, line: 1}
	bag := diag.NewBag()
	l.diags = bag

	for state := stateFunc(lexGlobal); state != nil; {
		state = state(l)
	}
	bag.Close()

	if len(src) > 0 && (len(l.tokens) == 0 || l.tokens[len(l.tokens)-1].Kind != Semicolon) {
		span := diag.Span{Line: l.line, Column: l.pos - l.lineStart + 1}
		if len(l.tokens) > 0 {
			span = l.tokens[len(l.tokens)-1].Span
		}
		l.tokens = append(l.tokens, Token{Kind: Semicolon, Text: ";", Span: span})
	}
	return l.tokens, bag.Items()
}

// emit appends a token of kind k spanning [start, pos) to the token slice.
func (l *lexer) emit(k Kind) {
	text := l.input[l.start:l.pos]
	l.tokens = append(l.tokens, Token{Kind: k, Text: text, Span: l.span(text)})
	l.start = l.pos
}

// span builds the Span for the pending token, anchored at l.start.
func (l *lexer) span(text string) diag.Span {
	return diag.Span{
		Line:      l.line,
		Column:    l.start - l.lineStart + 1,
		Slice:     text,
		LineSlice: l.currentLine(),
	}
}

// currentLine returns the full text of the line containing l.start.
func (l *lexer) currentLine() string {
	end := strings.IndexByte(l.input[l.lineStart:], '\n')
	if end < 0 {
		return l.input[l.lineStart:]
	}
	return l.input[l.lineStart : l.lineStart+end]
}

// next returns the next rune in the input, advancing the scan head.
func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

// backup steps back one rune. Must only be called once per call of next.
func (l *lexer) backup() {
	l.pos -= l.width
}

// peek returns, but does not consume, the next rune.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// ignore discards the pending token text, starting a fresh one at pos.
func (l *lexer) ignore() {
	l.start = l.pos
}

// accept consumes the next rune if it is in valid.
func (l *lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a maximal run of runes from valid.
func (l *lexer) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

// newline records a line break at the current scan head.
func (l *lexer) newline() {
	l.line++
	l.lineStart = l.pos
}

func isAlpha(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

func isOpChar(r rune) bool {
	return strings.ContainsRune(opChars, r)
}
