package brewin

import (
	"bufio"
	"io"
	"strings"
)

// LineSource supplies the lines consumed by inputi and inputs. ReadLine
// returns io.EOF once the source is exhausted.
type LineSource interface {
	ReadLine() (string, error)
}

type lineInput struct {
	lines []string
	next  int
}

// NewLineInput serves a fixed sequence of lines.
func NewLineInput(lines ...string) LineSource {
	return &lineInput{lines: append([]string(nil), lines...)}
}

func (in *lineInput) ReadLine() (string, error) {
	if in.next >= len(in.lines) {
		return "", io.EOF
	}
	line := in.lines[in.next]
	in.next++
	return line, nil
}

type readerInput struct {
	scanner *bufio.Scanner
}

// NewReaderInput serves the lines of r, without their line terminators.
func NewReaderInput(r io.Reader) LineSource {
	return &readerInput{scanner: bufio.NewScanner(r)}
}

func (in *readerInput) ReadLine() (string, error) {
	if !in.scanner.Scan() {
		if err := in.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(in.scanner.Text(), "\r"), nil
}
