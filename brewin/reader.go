package brewin

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type reader struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch  rune
	eof bool

	comments int
}

// Parse reads Brewin source text into its nested-list form. Every node
// records the line and column of its first character; lists record their
// opening parenthesis.
func Parse(source string) (*Program, error) {
	r := &reader{input: source, line: 1}
	r.readRune()

	prog := &Program{Source: source}
	for {
		r.skipWhitespaceAndComments()
		if r.eof {
			prog.Comments = r.comments
			return prog, nil
		}
		n, err := r.readNode()
		if err != nil {
			return nil, err
		}
		prog.Forms = append(prog.Forms, n)
	}
}

func (r *reader) readRune() {
	if r.offset >= len(r.input) {
		r.width = 0
		r.ch = 0
		r.eof = true
		return
	}

	ch, w := utf8.DecodeRuneInString(r.input[r.offset:])
	r.width = w
	r.offset += w

	if ch == '\n' {
		r.line++
		r.column = 0
	} else {
		r.column++
	}

	r.ch = ch
}

func (r *reader) pos() Position {
	return Position{Line: r.line, Column: r.column}
}

func (r *reader) skipWhitespaceAndComments() {
	for {
		switch {
		case r.ch == '#':
			r.comments++
			for r.ch != '\n' && !r.eof {
				r.readRune()
			}
		case unicode.IsSpace(r.ch):
			r.readRune()
		default:
			return
		}
	}
}

func (r *reader) readNode() (Node, error) {
	start := r.pos()
	switch r.ch {
	case '(':
		r.readRune()
		list := &List{position: start}
		for {
			r.skipWhitespaceAndComments()
			switch {
			case r.eof:
				return nil, newError(SyntaxError, start, "unterminated list")
			case r.ch == ')':
				r.readRune()
				return list, nil
			}
			item, err := r.readNode()
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
	case ')':
		return nil, newError(SyntaxError, start, "unexpected )")
	case '"':
		r.readRune()
		var b strings.Builder
		for r.ch != '"' {
			if r.eof {
				return nil, newError(SyntaxError, start, "unterminated string")
			}
			if r.ch == 0 {
				return nil, newError(SyntaxError, r.pos(), "NUL character in string")
			}
			b.WriteRune(r.ch)
			r.readRune()
		}
		r.readRune()
		return &Atom{Text: b.String(), Quoted: true, position: start}, nil
	case 0:
		return nil, newError(SyntaxError, start, "unexpected NUL character")
	default:
		from := r.offset - r.width
		for !r.eof && !isDelimiter(r.ch) {
			r.readRune()
		}
		to := r.offset - r.width
		return &Atom{Text: r.input[from:to], position: start}, nil
	}
}

func isDelimiter(ch rune) bool {
	return ch == '(' || ch == ')' || ch == '"' || ch == 0 || unicode.IsSpace(ch)
}
