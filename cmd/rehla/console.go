package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// console reads answers from the user and writes output.
type console struct {
	in           *bufio.Reader
	out          io.Writer
	readPassword func() ([]byte, error)
}

func newConsole(in *os.File, out io.Writer) *console {
	c := &console{in: bufio.NewReader(in), out: out}
	if term.IsTerminal(int(in.Fd())) {
		c.readPassword = func() ([]byte, error) { return term.ReadPassword(int(in.Fd())) }
	}
	return c
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// ask prompts for a line; EOF after partial input returns that input.
func (c *console) ask(prompt string) (string, error) {
	c.printf("%s: ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askPassword reads without echo when attached to a terminal.
func (c *console) askPassword() (string, error) {
	if c.readPassword == nil {
		return c.ask("Password")
	}
	c.printf("Password: ")
	pw, err := c.readPassword()
	c.println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (c *console) confirm(prompt string) (bool, error) {
	answer, err := c.ask(prompt + " [y/N]")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
