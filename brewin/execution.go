package brewin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Execution is the state of one run of a Script.
type Execution struct {
	engine       *Engine
	script       *Script
	ctx          context.Context
	logger       *slog.Logger
	strict       bool
	quota        int
	recursionCap int
	maxObjects   int
	steps        int
	objects      int
	frames       []*frame
	input        LineSource
	output       []string
	sink         io.Writer
}

// typedValue pairs a value with its static type. In base mode the static
// type is the value's dynamic type.
type typedValue struct {
	val Value
	ty  Type
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", errStepQuotaExceeded, exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) errorAt(kind ErrorKind, pos Position, format string, args ...any) error {
	frames := make([]StackFrame, 0, len(exec.frames))
	if n := len(exec.frames); n > 0 {
		frames = append(frames, StackFrame{Function: exec.frames[n-1].method.qualifiedName(), Pos: pos})
		for i := n - 1; i > 0; i-- {
			frames = append(frames, StackFrame{Function: exec.frames[i-1].method.qualifiedName(), Pos: exec.frames[i].site})
		}
	}
	return &Error{
		Kind:      kind,
		Line:      pos.Line,
		Message:   fmt.Sprintf(format, args...),
		CodeFrame: formatCodeFrame(exec.script.source, pos),
		Frames:    frames,
	}
}

func (exec *Execution) current() *frame {
	return exec.frames[len(exec.frames)-1]
}

func (exec *Execution) pushFrame(f *frame) error {
	if exec.recursionCap > 0 && len(exec.frames) >= exec.recursionCap {
		return exec.errorAt(FaultError, f.site, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.frames = append(exec.frames, f)
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.frames) == 0 {
		return
	}
	exec.frames = exec.frames[:len(exec.frames)-1]
}

// instantiate allocates a new object of class c with every field, inherited
// ones first, set to its declared default.
func (exec *Execution) instantiate(c *ClassDef, pos Position) (Value, error) {
	if exec.maxObjects > 0 && exec.objects >= exec.maxObjects {
		return Value{}, exec.errorAt(FaultError, pos, "object limit exceeded (limit %d)", exec.maxObjects)
	}
	exec.objects++

	fields := exec.script.table.FlattenedFields(c)
	inst := &Instance{ID: exec.objects, Class: c, slots: make([]slot, len(fields))}
	for _, f := range fields {
		inst.slots[f.slot] = slot{value: f.Default, ty: f.Type}
	}
	return newObject(inst), nil
}

func (exec *Execution) emit(line string) error {
	exec.output = append(exec.output, line)
	if exec.sink != nil {
		if _, err := io.WriteString(exec.sink, line+"\n"); err != nil {
			return fmt.Errorf("%w: %v", errOutputFailed, err)
		}
	}
	return nil
}

func (exec *Execution) readLine(pos Position) (string, error) {
	if exec.input == nil {
		return "", exec.errorAt(FaultError, pos, "no input available")
	}
	line, err := exec.input.ReadLine()
	if err == io.EOF {
		return "", exec.errorAt(FaultError, pos, "no input available")
	}
	if err != nil {
		return "", exec.errorAt(FaultError, pos, "reading input: %v", err)
	}
	return line, nil
}

// staticType is what the checker sees for a slot: its declared type in
// extended mode, the held value's type otherwise.
func (exec *Execution) staticType(s *slot) Type {
	if s.ty.Kind == TypeAny {
		return typeOf(s.value)
	}
	return s.ty
}

func (exec *Execution) trace(msg string, attrs ...any) {
	if !exec.logger.Enabled(exec.ctx, slog.LevelDebug) {
		return
	}
	exec.logger.DebugContext(exec.ctx, msg, attrs...)
}
