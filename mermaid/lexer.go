package mermaid

import (
	"bytes"
	"fmt"
	"strings"
)

// Lexer tokenizes flowchart text. Node and edge labels are not tokenized
// eagerly: the parser asks for them with ScanLabel once it has seen the
// opening delimiter.
type Lexer struct {
	src    []byte
	pos    int // current byte offset
	line   int // current line (1-based)
	col    int // current column (1-based)
	peeked *Token
}

// NewLexer creates a new Lexer for the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// newLexerAt starts lexing at a byte offset that begins the given line.
func newLexerAt(src []byte, offset, line int) *Lexer {
	return &Lexer{src: src, pos: offset, line: line, col: 1}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next returns the next token and advances the lexer.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

// ScanLabel reads a label up to and including closer. A label is either a
// double-quoted string, which may contain the closer, or bare text. The
// returned literal is unescaped and, for bare text, trimmed.
func (l *Lexer) ScanLabel(closer string) (Token, error) {
	if l.peeked != nil {
		return Token{}, fmt.Errorf("mermaid: ScanLabel called with a peeked token")
	}
	pos := l.currentPos()

	if l.peek() == '"' {
		l.advance()
		start := l.pos
		for !l.atEnd() && l.peek() != '"' {
			if l.peek() == '\n' {
				return Token{}, l.unterminated(pos)
			}
			l.advance()
		}
		if l.atEnd() {
			return Token{}, l.unterminated(pos)
		}
		text := string(l.src[start:l.pos])
		l.advance() // closing "
		l.skipBlanks()
		if !l.hasPrefix(closer) {
			return Token{}, &LexError{ParseError{
				Message: fmt.Sprintf("expected %q after quoted label", closer),
				Pos:     l.currentPos(),
			}}
		}
		l.advanceN(len(closer))
		return Token{Kind: TokenLabel, Literal: Unescape(text), Pos: pos}, nil
	}

	start := l.pos
	for !l.atEnd() && !l.hasPrefix(closer) {
		if l.peek() == '\n' {
			return Token{}, l.unterminated(pos)
		}
		l.advance()
	}
	if l.atEnd() {
		return Token{}, l.unterminated(pos)
	}
	text := strings.TrimSpace(string(l.src[start:l.pos]))
	l.advanceN(len(closer))
	return Token{Kind: TokenLabel, Literal: Unescape(text), Pos: pos}, nil
}

// skipLine discards everything up to, not including, the next newline.
func (l *Lexer) skipLine() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) unterminated(pos Position) error {
	return &LexError{ParseError{Message: "unterminated label", Pos: pos}}
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) hasPrefix(s string) bool {
	return bytes.HasPrefix(l.src[l.pos:], []byte(s))
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for range n {
		l.advance()
	}
}

// skipBlanks skips spaces, tabs, carriage returns and %% comments, but not newlines.
func (l *Lexer) skipBlanks() {
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			l.advance()
		case ch == '%' && l.peekAt(1) == '%':
			l.skipLine()
		default:
			return
		}
	}
}

func (l *Lexer) scan() (Token, error) {
	l.skipBlanks()

	if l.atEnd() {
		return Token{Kind: TokenEOF, Pos: l.currentPos()}, nil
	}

	pos := l.currentPos()
	ch := l.peek()

	switch ch {
	case '\n':
		l.advance()
		return Token{Kind: TokenNewline, Literal: "\n", Pos: pos}, nil
	case ';':
		l.advance()
		return Token{Kind: TokenSemicolon, Literal: ";", Pos: pos}, nil
	case '|':
		l.advance()
		return Token{Kind: TokenPipe, Literal: "|", Pos: pos}, nil
	case '-':
		if l.hasPrefix("-->") {
			l.advanceN(3)
			return Token{Kind: TokenArrow, Literal: "-->", Pos: pos}, nil
		}
		l.advance()
		return Token{}, &LexError{ParseError{
			Message: "unsupported link; only --> is recognized",
			Pos:     pos,
		}}
	case '(':
		if next := l.peekAt(1); next == '[' || next == '(' {
			l.advanceN(2)
			return Token{Kind: TokenShapeOpen, Literal: "(" + string(next), Pos: pos}, nil
		}
		l.advance()
		return Token{Kind: TokenShapeOpen, Literal: "(", Pos: pos}, nil
	case '[', '{':
		l.advance()
		return Token{Kind: TokenShapeOpen, Literal: string(ch), Pos: pos}, nil
	}

	if isIdentPart(ch) {
		return l.scanIdentifier(), nil
	}

	l.advance()
	return Token{}, &LexError{ParseError{
		Message: fmt.Sprintf("unexpected character %q", ch),
		Pos:     pos,
	}}
}

// scanIdentifier reads an id. A hyphen is part of the id only when another
// id character follows it, so a-b is one id and a-->b is a link.
func (l *Lexer) scanIdentifier() Token {
	pos := l.currentPos()
	start := l.pos
	for !l.atEnd() {
		ch := l.peek()
		if isIdentPart(ch) || (ch == '-' && isIdentPart(l.peekAt(1))) {
			l.advance()
			continue
		}
		break
	}
	return Token{Kind: TokenIdentifier, Literal: string(l.src[start:l.pos]), Pos: pos}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
