package lexer

// lexGlobal is the top-level dispatch state: it looks at one rune and
// decides which specialized state should consume the token it starts.
func lexGlobal(l *lexer) stateFunc {
	r := l.next()
	switch {
	case r == eof:
		return nil
	case isSpace(r):
		l.ignore()
		return lexGlobal
	case r == '\n':
		l.newline()
		l.ignore()
		return lexGlobal
	case r == ';':
		l.emit(Semicolon)
		return lexGlobal
	case r == '(':
		l.emit(LParen)
		return lexGlobal
	case r == ')':
		l.emit(RParen)
		return lexGlobal
	case isAlpha(r):
		return lexWord
	case isDigit(r):
		return lexNumber
	case isOpChar(r):
		return lexOp
	default:
		l.diags.Add(l.span(string(r)), "Invalid token found: %q", string(r))
		l.ignore()
		return lexGlobal
	}
}

// lexWord consumes an identifier or keyword: an alphabetic/underscore head
// followed by any run of alphanumerics/underscores.
func lexWord(l *lexer) stateFunc {
	for {
		r := l.next()
		if isAlpha(r) || isDigit(r) {
			continue
		}
		l.backup()
		break
	}
	text := l.input[l.start:l.pos]
	if _, kind := isKeyword(text); kind != Ident {
		l.emit(kind)
	} else {
		l.emit(Ident)
	}
	return lexGlobal
}

// lexNumber consumes a run of decimal digits as an integer literal.
func lexNumber(l *lexer) stateFunc {
	l.acceptRun("0123456789")
	l.emit(Int)
	return lexGlobal
}

// lexOp consumes a maximal run of operator-class characters and classifies
// the result: "=" and "->" are carved out as their own Kinds, everything
// else is a generic OpCode.
func lexOp(l *lexer) stateFunc {
	l.acceptRun(opChars)
	text := l.input[l.start:l.pos]
	switch text {
	case "=":
		l.emit(Equal)
	case "->":
		l.emit(Arrow)
	default:
		l.emit(OpCode)
	}
	return lexGlobal
}
