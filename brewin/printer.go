package brewin

import "strings"

const prettyWidth = 72

// Format renders a node on a single line, with strings re-quoted.
func Format(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Atom:
		if n.Quoted {
			b.WriteByte('"')
			b.WriteString(n.Text)
			b.WriteByte('"')
			return
		}
		b.WriteString(n.Text)
	case *List:
		b.WriteByte('(')
		for i, item := range n.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeNode(b, item)
		}
		b.WriteByte(')')
	}
}

// Pretty renders a node across lines, two spaces per level. A list that
// fits in the line width stays on one line; otherwise its head stays with
// the opening paren and each remaining item starts a new line.
func Pretty(n Node) string {
	var b strings.Builder
	writePretty(&b, n, 0)
	return b.String()
}

func writePretty(b *strings.Builder, n Node, indent int) {
	flat := Format(n)
	list, ok := n.(*List)
	if !ok || indent+len(flat) <= prettyWidth || len(list.Items) < 2 {
		b.WriteString(flat)
		return
	}

	b.WriteByte('(')
	writeNode(b, list.Items[0])
	rest := list.Items[1:]
	// keep short leading atoms, like a class or method name, on the head line
	for len(rest) > 0 {
		if _, isAtom := rest[0].(*Atom); !isAtom {
			break
		}
		b.WriteByte(' ')
		writeNode(b, rest[0])
		rest = rest[1:]
	}
	// a method's parameters and a let's declarations stay with the head too
	if head, _ := formName(list); (head == "method" || head == "let") && len(rest) > 1 {
		b.WriteByte(' ')
		writeNode(b, rest[0])
		rest = rest[1:]
	}
	for _, item := range rest {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", indent+2))
		writePretty(b, item, indent+2)
	}
	b.WriteByte(')')
}

func abbreviate(n Node) string {
	s := Format(n)
	if len(s) > 40 {
		return s[:37] + "..."
	}
	return s
}
