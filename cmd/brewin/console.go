package main

import (
	"errors"
	"io"

	"github.com/peterh/liner"
)

// consoleInput serves inputi/inputs from an interactive terminal with line
// editing and a per-run history.
type consoleInput struct {
	state  *liner.State
	prompt string
}

func newConsoleInput(prompt string) *consoleInput {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &consoleInput{state: state, prompt: prompt}
}

func (c *consoleInput) ReadLine() (string, error) {
	line, err := c.state.Prompt(c.prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if line != "" {
		c.state.AppendHistory(line)
	}
	return line, nil
}

func (c *consoleInput) Close() {
	_ = c.state.Close()
}
