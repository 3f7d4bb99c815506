package mermaid

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF        TokenKind = iota
	TokenNewline              // \n
	TokenSemicolon            // ;
	TokenIdentifier           // [A-Za-z0-9_]+ with inner single hyphens
	TokenArrow                // -->
	TokenPipe                 // |
	TokenShapeOpen            // ( [ { (( ([
	TokenLabel                // text between delimiters, already unescaped
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenNewline:    "newline",
	TokenSemicolon:  "';'",
	TokenIdentifier: "identifier",
	TokenArrow:      "'-->'",
	TokenPipe:       "'|'",
	TokenShapeOpen:  "shape",
	TokenLabel:      "label",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical token.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     Position
}
