package brewin

import "sort"

// Warning is a lint finding. Loading a program never produces warnings;
// they come from Script.Lint.
type Warning struct {
	Method  string
	Pos     Position
	Message string
}

// Lint reports statements that can never run because an earlier statement
// in the same sequence always returns, and methods no call names.
func (s *Script) Lint() []Warning {
	warnings := make([]Warning, 0)
	called := make(map[callKey]struct{})
	for _, c := range s.table.order {
		for _, m := range c.Methods {
			lintStatement(m.qualifiedName(), m.Body, &warnings)
			collectCalls(m.Body, called)
		}
	}
	for _, c := range s.table.order {
		for _, m := range c.Methods {
			if m == s.entry {
				continue
			}
			if _, ok := called[callKey{m.Name, m.Arity()}]; !ok {
				warnings = append(warnings, Warning{
					Method:  m.qualifiedName(),
					Pos:     m.Pos,
					Message: "method is never called",
				})
			}
		}
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Method < warnings[j].Method
	})
	return warnings
}

func lintSequence(method string, stmts []Node, warnings *[]Warning) bool {
	terminated := false
	for _, stmt := range stmts {
		if terminated {
			*warnings = append(*warnings, Warning{
				Method:  method,
				Pos:     stmt.Pos(),
				Message: "unreachable statement",
			})
			continue
		}
		if lintStatement(method, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

// lintStatement reports whether stmt returns on every path.
func lintStatement(method string, stmt Node, warnings *[]Warning) bool {
	list, ok := stmt.(*List)
	if !ok {
		return false
	}
	name, _ := formName(list)
	switch name {
	case "return":
		return true
	case "begin":
		return lintSequence(method, list.Items[1:], warnings)
	case "let":
		if len(list.Items) < 3 {
			return false
		}
		return lintSequence(method, list.Items[2:], warnings)
	case "if":
		if len(list.Items) < 3 {
			return false
		}
		then := lintStatement(method, list.Items[2], warnings)
		if len(list.Items) < 4 {
			return false
		}
		otherwise := lintStatement(method, list.Items[3], warnings)
		return then && otherwise
	case "while":
		if len(list.Items) == 3 {
			lintStatement(method, list.Items[2], warnings)
		}
		return false
	default:
		return false
	}
}

// callKey identifies the overloads a call can reach: calls resolve by name
// and argument count.
type callKey struct {
	name string
	argc int
}

func collectCalls(n Node, called map[callKey]struct{}) {
	list, ok := n.(*List)
	if !ok {
		return
	}
	if head, _ := formName(list); head == "call" && len(list.Items) >= 3 {
		if name, ok := symbol(list.Items[2]); ok {
			called[callKey{name, len(list.Items) - 3}] = struct{}{}
		}
	}
	for _, item := range list.Items {
		collectCalls(item, called)
	}
}
