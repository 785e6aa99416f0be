package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type Prompter interface {
	Ask(question string) (string, error)
	Confirm(question string) (bool, error)
	Println(line string)
}

type LinePrompter struct {
	input  io.Reader
	output io.Writer
}

func NewLinePrompter(input io.Reader, output io.Writer) LinePrompter {
	return LinePrompter{input: input, output: output}
}

// Ask prints the question and returns the trimmed answer. End of input with
// nothing read returns io.EOF.
func (p LinePrompter) Ask(question string) (string, error) {
	fmt.Fprint(p.output, question)

	line, err := p.readLine()
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "failed to read answer")
	}

	return strings.TrimSpace(line), err
}

func (p LinePrompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question)
	return answer == "y" || answer == "Y", err
}

func (p LinePrompter) Println(line string) {
	fmt.Fprintln(p.output, line)
}

// readLine reads one byte at a time. appcfg shares the same stdin for its
// password prompt, so nothing past the newline may be consumed here.
func (p LinePrompter) readLine() (string, error) {
	var line []byte
	b := make([]byte, 1)

	for {
		n, err := p.input.Read(b)
		if n > 0 {
			if b[0] == '\n' {
				return strings.TrimSuffix(string(line), "\r"), nil
			}
			line = append(line, b[0])
		}
		if err != nil {
			return string(line), err
		}
	}
}
