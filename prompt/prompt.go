// Package prompt collects the scan target and port range interactively.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"portprowler/port"
)

// Input is what the user asked to scan.
type Input struct {
	Target string
	Range  port.Range
}

// Prompter reads answers line by line and reprompts on invalid input.
type Prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

// New returns a Prompter reading answers from in and writing questions to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{sc: bufio.NewScanner(in), out: out}
}

// Collect asks for target, start port and end port in that order.
func (p *Prompter) Collect() (Input, error) {
	target, err := p.Target()
	if err != nil {
		return Input{}, err
	}
	start, err := p.StartPort()
	if err != nil {
		return Input{}, err
	}
	end, err := p.EndPort(start)
	if err != nil {
		return Input{}, err
	}
	return Input{Target: target, Range: port.Range{Start: start, End: end}}, nil
}

// Target asks for the host to scan until a non-empty answer is given.
func (p *Prompter) Target() (string, error) {
	for {
		line, err := p.ask("Enter target (domain or IP address): ")
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		fmt.Fprintln(p.out, "Please enter a domain name or IP address.")
	}
}

// StartPort asks for a port in 1..65535.
func (p *Prompter) StartPort() (uint16, error) {
	return p.askPort("Enter start port (1-65535): ", 1)
}

// EndPort asks for a port in start..65535.
func (p *Prompter) EndPort(start uint16) (uint16, error) {
	return p.askPort("Enter end port (1-65535): ", start)
}

func (p *Prompter) askPort(question string, lowest uint16) (uint16, error) {
	for {
		line, err := p.ask(question)
		if err != nil {
			return 0, err
		}
		v, err := port.ParsePort(line)
		switch {
		case errors.Is(err, port.ErrOutOfRange), err == nil && v < lowest:
			fmt.Fprintf(p.out, "Please enter a port number between %d and 65535.\n", lowest)
		case err != nil:
			fmt.Fprintln(p.out, "Invalid input. Please enter a numeric value for the port.")
		default:
			return v, nil
		}
	}
}

// ask returns io.EOF once input is exhausted.
func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.sc.Text()), nil
}
