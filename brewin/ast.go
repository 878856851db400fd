package brewin

import "strconv"

// Position is the 1-based source location of a node.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Column > 0 {
		return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	}
	return "line " + strconv.Itoa(p.Line)
}

// Node is one element of a parsed program: an *Atom or a *List.
type Node interface {
	Pos() Position
	node()
}

// Atom is a bare token or a double-quoted string literal.
type Atom struct {
	Text     string
	Quoted   bool
	position Position
}

func (a *Atom) node()         {}
func (a *Atom) Pos() Position { return a.position }

// List is a parenthesized form. Its position is that of the opening paren.
type List struct {
	Items    []Node
	position Position
}

func (l *List) node()         {}
func (l *List) Pos() Position { return l.position }

// NewAtom builds a bare atom, as the reader would for an identifier or number.
func NewAtom(text string, pos Position) *Atom {
	return &Atom{Text: text, position: pos}
}

// NewStringAtom builds a quoted string literal atom.
func NewStringAtom(text string, pos Position) *Atom {
	return &Atom{Text: text, Quoted: true, position: pos}
}

// NewList builds a list node at pos.
func NewList(pos Position, items ...Node) *List {
	return &List{Items: items, position: pos}
}

// Program is the ordered sequence of top-level forms handed to the engine.
// Source is optional and only used to render code frames in errors.
// Comments counts the # comments the reader skipped.
type Program struct {
	Forms    []Node
	Source   string
	Comments int
}

// formName returns the head symbol of a list, if it has one.
func formName(l *List) (string, bool) {
	if len(l.Items) == 0 {
		return "", false
	}
	return symbol(l.Items[0])
}

// symbol reports the text of an unquoted atom.
func symbol(n Node) (string, bool) {
	a, ok := n.(*Atom)
	if !ok || a.Quoted {
		return "", false
	}
	return a.Text, true
}
