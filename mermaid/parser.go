package mermaid

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var directions = map[string]bool{
	"TD": true,
	"TB": true,
	"BT": true,
	"LR": true,
	"RL": true,
}

// styleStatements are skipped to the end of their line.
var styleStatements = map[string]bool{
	"style":     true,
	"classDef":  true,
	"class":     true,
	"linkStyle": true,
	"click":     true,
}

// unsupportedStatements have no task-flow meaning.
var unsupportedStatements = map[string]bool{
	"subgraph":  true,
	"end":       true,
	"direction": true,
}

// Parse parses flowchart text and returns a Chart.
// Returns a *SyntaxError or *LexError on failure.
func Parse(src []byte) (*Chart, error) {
	title, offset, line, err := parseFrontmatter(src)
	if err != nil {
		return nil, err
	}
	p := &parser{
		lex:   newLexerAt(src, offset, line),
		nodes: make(map[string]*Node),
	}
	chart, err := p.parseChart()
	if err != nil {
		return nil, err
	}
	chart.Title = title
	return chart, nil
}

// parseFrontmatter reads an optional leading --- delimited YAML block and
// returns the title plus where the flowchart body starts.
func parseFrontmatter(src []byte) (title string, offset, line int, err error) {
	first, _, found := bytes.Cut(src, []byte("\n"))
	if !found || !isFence(first) {
		return "", 0, 1, nil
	}

	offset = len(first) + 1
	line = 2
	metaStart := offset
	for offset < len(src) {
		lineEnd := bytes.IndexByte(src[offset:], '\n')
		var text []byte
		next := len(src)
		if lineEnd >= 0 {
			text = src[offset : offset+lineEnd]
			next = offset + lineEnd + 1
		} else {
			text = src[offset:]
		}
		if isFence(text) {
			var fm frontmatter
			if err := yaml.Unmarshal(src[metaStart:offset], &fm); err != nil {
				return "", 0, 0, &SyntaxError{
					ParseError: ParseError{
						Message: fmt.Sprintf("invalid frontmatter: %v", err),
						Pos:     Position{Line: 2, Column: 1, Offset: metaStart},
						Cause:   err,
					},
				}
			}
			return fm.Title, next, line + 1, nil
		}
		offset = next
		line++
	}
	return "", 0, 0, &SyntaxError{
		ParseError: ParseError{
			Message: "unterminated frontmatter",
			Pos:     Position{Line: 1, Column: 1},
		},
	}
}

// isFence reports whether line is a frontmatter delimiter. The dashes must
// start at column 1, so indented block-scalar content is never a fence.
func isFence(line []byte) bool {
	return string(bytes.TrimRight(line, " \t\r")) == "---"
}

type parser struct {
	lex   *Lexer
	nodes map[string]*Node
	order []*Node
	edges []*Edge
}

func (p *parser) peek() (Token, error) {
	return p.lex.Peek()
}

func (p *parser) next() (Token, error) {
	return p.lex.Next()
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   kind.String(),
			Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
		}
	}
	return tok, nil
}

// skipSeparators consumes newlines and semicolons.
func (p *parser) skipSeparators() error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Kind != TokenNewline && tok.Kind != TokenSemicolon {
			return nil
		}
		_, _ = p.next()
	}
}

// ensureNode registers a node on first mention, labeled with its id.
func (p *parser) ensureNode(id string, pos Position) *Node {
	if n, ok := p.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id, Label: id, Pos: pos}
	p.nodes[id] = n
	p.order = append(p.order, n)
	return n
}

func (p *parser) parseChart() (*Chart, error) {
	if err := p.skipSeparators(); err != nil {
		return nil, err
	}

	head, err := p.next()
	if err != nil {
		return nil, err
	}
	if head.Kind != TokenIdentifier || (head.Literal != "flowchart" && head.Literal != "graph") {
		return nil, &SyntaxError{
			ParseError: ParseError{Pos: head.Pos},
			Expected:   "'flowchart' or 'graph'",
			Got:        fmt.Sprintf("%s (%q)", head.Kind, head.Literal),
		}
	}

	chart := &Chart{Direction: "TB"}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenIdentifier && directions[tok.Literal] {
		_, _ = p.next()
		chart.Direction = tok.Literal
	}

	for {
		if err := p.skipSeparators(); err != nil {
			return nil, err
		}
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			break
		}
		if err := p.parseStatement(); err != nil {
			return nil, err
		}
	}

	chart.Nodes = p.order
	chart.Edges = p.edges
	return chart, nil
}

// parseStatement parses: NodeRef ( '-->' ( '|' Label '|' )? NodeRef )*
func (p *parser) parseStatement() error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind == TokenIdentifier {
		if styleStatements[tok.Literal] {
			_, _ = p.next()
			p.lex.skipLine()
			return nil
		}
		if unsupportedStatements[tok.Literal] {
			return &SyntaxError{ParseError: ParseError{
				Message: fmt.Sprintf("%s statements are not supported", tok.Literal),
				Pos:     tok.Pos,
			}}
		}
	}

	from, err := p.parseNodeRef()
	if err != nil {
		return err
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Kind != TokenArrow {
			break
		}
		arrow, _ := p.next()

		label := ""
		tok, err = p.peek()
		if err != nil {
			return err
		}
		if tok.Kind == TokenPipe {
			_, _ = p.next()
			lt, err := p.lex.ScanLabel("|")
			if err != nil {
				return err
			}
			label = lt.Literal
		}

		to, err := p.parseNodeRef()
		if err != nil {
			return err
		}
		p.edges = append(p.edges, &Edge{From: from.ID, To: to.ID, Label: label, Pos: arrow.Pos})
		from = to
	}

	tok, err = p.peek()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case TokenNewline, TokenSemicolon, TokenEOF:
		return nil
	default:
		return &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   "newline or ';'",
			Got:        fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal),
		}
	}
}

// parseNodeRef parses: ID ( Open Label Close )?
func (p *parser) parseNodeRef() (*Node, error) {
	idTok, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	n := p.ensureNode(idTok.Literal, idTok.Pos)

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenShapeOpen {
		return n, nil
	}
	_, _ = p.next()

	shape := shapeFromOpen(tok.Literal)
	lt, err := p.lex.ScanLabel(shape.Close())
	if err != nil {
		return nil, err
	}
	n.Shape = shape
	n.Label = lt.Literal
	return n, nil
}

func shapeFromOpen(open string) Shape {
	for s, d := range shapeDelims {
		if d[0] == open {
			return s
		}
	}
	return ShapeNone
}
