package ruby

import (
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes a Ruby-subset source buffer. Comments are collected
// separately so suppression directives survive parsing.
type Lexer struct {
	src      []byte
	filename string

	offset int
	line   int
	column int

	comments []Comment
}

func NewLexer(filename string, src []byte) *Lexer {
	return &Lexer{
		src:      src,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// Comments returns the comments seen so far, in source order.
func (l *Lexer) Comments() []Comment {
	return l.comments
}

func (l *Lexer) pos() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.offset,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) peek() rune {
	if l.offset >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.src[l.offset:])
	return r
}

func (l *Lexer) peekAt(n int) rune {
	off := l.offset
	for i := 0; i < n; i++ {
		if off >= len(l.src) {
			return 0
		}
		_, size := utf8.DecodeRune(l.src[off:])
		off += size
	}
	if off >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.src[off:])
	return r
}

func (l *Lexer) advance() rune {
	if l.offset >= len(l.src) {
		return 0
	}
	r, size := utf8.DecodeRune(l.src[l.offset:])
	l.offset += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// Next returns the next token. Newlines are significant (they terminate
// statements) and are returned as NEWLINE tokens; runs of blank lines
// collapse into one.
func (l *Lexer) Next() Token {
	l.skipSpacesAndComments()

	start := l.pos()
	r := l.peek()

	switch {
	case r == 0:
		return l.token(EOF, "", start)
	case r == '\n':
		for l.peek() == '\n' {
			l.advance()
			l.skipSpacesAndComments()
		}
		return l.token(NEWLINE, "\n", start)
	case r == ';':
		l.advance()
		return l.token(SEMICOLON, ";", start)
	case r == '.':
		l.advance()
		return l.token(DOT, ".", start)
	case r == ',':
		l.advance()
		return l.token(COMMA, ",", start)
	case r == '(':
		l.advance()
		return l.token(LPAREN, "(", start)
	case r == ')':
		l.advance()
		return l.token(RPAREN, ")", start)
	case r == '=':
		l.advance()
		if l.peek() == '>' {
			l.advance()
			return l.token(ARROW, "=>", start)
		}
		return l.token(ASSIGN, "=", start)
	case r == ':' && isIdentStart(l.peekAt(1)):
		l.advance()
		name := l.scanIdent()
		return l.token(SYMBOL, name, start)
	case r == '"' || r == '\'':
		return l.scanString(start)
	case unicode.IsDigit(r):
		return l.scanInt(start)
	case isIdentStart(r):
		name := l.scanIdent()
		if kw, ok := keywords[name]; ok {
			return l.token(kw, name, start)
		}
		if unicode.IsUpper([]rune(name)[0]) {
			return l.token(CONST, name, start)
		}
		return l.token(IDENT, name, start)
	default:
		l.advance()
		return l.token(ILLEGAL, string(r), start)
	}
}

func (l *Lexer) token(typ TokenType, lit string, start Position) Token {
	return Token{Type: typ, Literal: lit, Pos: start, End: l.pos()}
}

func (l *Lexer) skipSpacesAndComments() {
	for {
		r := l.peek()
		if r == ' ' || r == '\t' || r == '\r' {
			l.advance()
			continue
		}
		if r == '#' {
			start := l.pos()
			var text []rune
			l.advance()
			for l.peek() != '\n' && l.peek() != 0 {
				text = append(text, l.advance())
			}
			l.comments = append(l.comments, Comment{
				Text: string(text),
				Pos:  start,
				End:  l.pos(),
			})
			continue
		}
		// a backslash at end of line continues the statement
		if r == '\\' && l.peekAt(1) == '\n' {
			l.advance()
			l.advance()
			continue
		}
		return
	}
}

func (l *Lexer) scanIdent() string {
	start := l.offset
	for isIdentPart(l.peek()) {
		l.advance()
	}
	// predicate and bang method names
	if r := l.peek(); r == '?' || r == '!' {
		l.advance()
	}
	return string(l.src[start:l.offset])
}

func (l *Lexer) scanInt(start Position) Token {
	begin := l.offset
	for unicode.IsDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	return l.token(INT, string(l.src[begin:l.offset]), start)
}

func (l *Lexer) scanString(start Position) Token {
	quote := l.advance()
	begin := l.offset
	for {
		r := l.peek()
		if r == 0 || r == '\n' {
			return l.token(ILLEGAL, string(l.src[begin:l.offset]), start)
		}
		if r == '\\' {
			l.advance()
			l.advance()
			continue
		}
		if r == quote {
			lit := string(l.src[begin:l.offset])
			l.advance()
			return l.token(STRING, lit, start)
		}
		l.advance()
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
