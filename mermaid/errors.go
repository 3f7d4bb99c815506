package mermaid

import "fmt"

// ParseError locates a failure in flowchart text. Every error returned by
// Parse embeds one.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error // e.g. the YAML error behind bad frontmatter
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// LexError is raised while scanning: a label with no closing delimiter or a
// byte that starts no flowchart token.
type LexError struct{ ParseError }

// SyntaxError is raised by the statement grammar. It either names the token
// the parser wanted and what it found, or carries a Message for statements
// the reader refuses, such as subgraph or an unterminated frontmatter block.
type SyntaxError struct {
	ParseError
	Expected string
	Got      string
}

func (e *SyntaxError) Error() string {
	if e.Message != "" {
		return e.ParseError.Error()
	}
	where := ""
	if e.Pos.Line > 0 {
		where = fmt.Sprintf("line %d, col %d: ", e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("%sexpected %s, got %s", where, e.Expected, e.Got)
}
