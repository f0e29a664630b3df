package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter reads interactive input line by line. Every numeric prompt keeps
// asking until it gets a parseable value, so a typo never aborts a workflow.
// Once the input is exhausted the prompter reports closed and every prompt
// returns its zero value without re-asking; menu loops check closed and fall
// through to their exit option.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// line prints the prompt and returns one trimmed input line. On a closed or
// exhausted input it marks the prompter closed and returns an empty string.
func (p *prompter) line(prompt string) string {
	if p.eof {
		return ""
	}
	fmt.Fprint(p.out, prompt)
	text, err := p.in.ReadString('\n')
	if err != nil && text == "" {
		p.eof = true
		return ""
	}
	return strings.TrimSpace(text)
}

// closed reports whether the input is exhausted.
func (p *prompter) closed() bool {
	return p.eof
}

// intVal keeps prompting until the input parses as an integer, or zero once
// the input is closed.
func (p *prompter) intVal(prompt string) int {
	for {
		text := p.line(prompt)
		if p.eof {
			return 0
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			p.println("Please enter a whole number.")
			continue
		}
		return n
	}
}

// choice reads a menu selection. Unlike intVal it does not re-prompt; the
// menu loop reports an invalid choice and redraws itself.
func (p *prompter) choice(prompt string) int {
	n, err := strconv.Atoi(p.line(prompt))
	if err != nil {
		return -1
	}
	return n
}

// floatVal keeps prompting until the input parses as a number, or zero once
// the input is closed.
func (p *prompter) floatVal(prompt string) float64 {
	for {
		text := p.line(prompt)
		if p.eof {
			return 0
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.println("Please enter a number.")
			continue
		}
		return f
	}
}

// optionalFloat returns nil when the operator presses Enter to skip.
func (p *prompter) optionalFloat(prompt string) *float64 {
	for {
		text := p.line(prompt)
		if text == "" {
			return nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.println("Please enter a number, or press Enter to skip.")
			continue
		}
		return &f
	}
}

// parseIntOrPrompt parses text as an integer, falling back to re-prompting
// when it does not parse.
func (p *prompter) parseIntOrPrompt(text, prompt string) int {
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	p.println("Please enter a whole number.")
	return p.intVal(prompt)
}

// yesNo interprets y/yes as true, anything else as false.
func (p *prompter) yesNo(prompt string) bool {
	answer := strings.ToLower(p.line(prompt))
	return answer == "y" || answer == "yes"
}
