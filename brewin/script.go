package brewin

import (
	"context"
	"io"
)

// Script is a loaded program. It is immutable and may be run any number of
// times; each run gets its own objects and output.
type Script struct {
	engine    *Engine
	table     *ClassTable
	mainClass *ClassDef
	entry     *MethodDef
	source    string
	program   *Program
}

// RunOptions supplies the external world of one run.
type RunOptions struct {
	// Input feeds inputi and inputs. A nil source behaves as exhausted.
	Input LineSource
	// Output, if set, receives every printed line as it is produced.
	Output io.Writer
}

func (s *Script) Mode() Mode { return s.engine.config.Mode }

// Classes lists the program's classes in definition order.
func (s *Script) Classes() []*ClassDef { return s.table.Classes() }

func (s *Script) Table() *ClassTable { return s.table }

// Run instantiates main and calls its main method. It returns the printed
// lines, including those produced before a failure.
func (s *Script) Run(ctx context.Context, opts RunOptions) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	exec := &Execution{
		engine:       s.engine,
		script:       s,
		ctx:          ctx,
		logger:       s.engine.logger,
		strict:       s.engine.config.Mode == ModeExtended,
		quota:        s.engine.config.StepQuota,
		recursionCap: s.engine.config.RecursionLimit,
		maxObjects:   s.engine.config.MaxObjects,
		frames:       make([]*frame, 0, 8),
		input:        opts.Input,
		sink:         opts.Output,
	}

	main, err := exec.instantiate(s.mainClass, s.entry.Pos)
	if err == nil {
		_, err = exec.invoke(s.entry, main.Instance(), nil, s.entry.Pos)
	}
	switch {
	case err == nil:
	case isHostControlSignal(err):
		exec.logger.Warn("run aborted", "error", err, "steps", exec.steps)
	default:
		exec.logger.Debug("run failed", "error", err, "steps", exec.steps)
	}
	return exec.output, err
}
