package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// errInputClosed is returned when stdin ends before a valid answer.
var errInputClosed = errors.New("input closed before an answer was given")

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) readLine(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", errInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askModule asks until a non-empty module name is entered.
func (p *prompter) askModule() (string, error) {
	for {
		module, err := p.readLine("\nEnter the Module Name: ")
		if err != nil {
			return "", err
		}
		if module != "" {
			return module, nil
		}
		fmt.Fprintln(p.out, "Module name cannot be empty. Please try again.")
	}
}

// askYesNo asks until one of y, yes, n, no is entered, in any case.
func (p *prompter) askYesNo(question string) (bool, error) {
	for {
		answer, err := p.readLine("\n" + question)
		if err != nil {
			return false, err
		}
		switch strings.ToUpper(answer) {
		case "Y", "YES":
			return true, nil
		case "N", "NO":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please enter 'Y' for Yes or 'N' for No.")
	}
}
