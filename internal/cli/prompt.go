package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ricardonunez-io/datasift/internal/record"
	"github.com/ricardonunez-io/datasift/internal/schema"
)

// ErrQuit is returned once the user interrupts a prompt or closes the input.
var ErrQuit = errors.New("quit")

// LineReader is the part of *readline.Instance the prompter needs.
type LineReader interface {
	Readline() (string, error)
}

type Prompter struct {
	in  LineReader
	out io.Writer
}

func NewPrompter(in LineReader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// NewReadline opens an interactive terminal prompt that keeps its history in
// historyFile.
func NewReadline(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}

func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprintln(p.out, question)
	line, err := p.in.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", ErrQuit
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Choose asks until the answer is one of options, compared case-insensitively,
// and returns the option as written in options.
func (p *Prompter) Choose(question string, options []string) (string, error) {
	for {
		answer, err := p.Ask(fmt.Sprintf("%s (%s)", question, strings.Join(options, ", ")))
		if err != nil {
			return "", err
		}
		for _, o := range options {
			if strings.EqualFold(answer, o) {
				return o, nil
			}
		}
		fmt.Fprintf(p.out, "Error: %q is not one of %s\n", answer, strings.Join(options, ", "))
	}
}

// AskValue asks until the answer parses as a filter value for f.
func (p *Prompter) AskValue(question string, f schema.Field) (record.Value, error) {
	for {
		answer, err := p.Ask(question)
		if err != nil {
			return record.Null(), err
		}
		v, err := ParseValue(answer, f)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "Error: %v\n", err)
	}
}

func (p *Prompter) Confirm(question string) (bool, error) {
	for {
		answer, err := p.Ask(question + " [y/n]")
		if err != nil {
			return false, err
		}
		if b, ok := parseBool(answer); ok {
			return b, nil
		}
		fmt.Fprintf(p.out, "Error: %q is not a valid boolean\n", answer)
	}
}
