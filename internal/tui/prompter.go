// Package tui is the terminal surface of the screens: selects, text inputs
// and confirmations.
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

var (
	// ErrInterrupted is returned when the user aborts a prompt with Ctrl+C.
	ErrInterrupted = errors.New("prompt interrupted")
	// ErrEOF is returned when the input is closed (Ctrl+D).
	ErrEOF = errors.New("input closed")
)

type Prompter interface {
	// Select returns the index and label of the chosen item.
	Select(label string, items []string) (int, string, error)
	// Input reads a line; validate may be nil.
	Input(label, initial string, validate func(string) error) (string, error)
	Secret(label string) (string, error)
	Confirm(label string) (bool, error)
	// Println writes a line of screen output.
	Println(a ...any)
}

const selectSize = 10

// Terminal prompts through promptui.
type Terminal struct {
	Out io.Writer
}

func NewTerminal() *Terminal {
	return &Terminal{Out: os.Stdout}
}

func (t *Terminal) Select(label string, items []string) (int, string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  selectSize,
	}
	idx, value, err := prompt.Run()
	return idx, value, mapErr(err)
}

func (t *Terminal) Input(label, initial string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   initial,
		AllowEdit: initial != "",
	}
	if validate != nil {
		prompt.Validate = promptui.ValidateFunc(validate)
	}
	value, err := prompt.Run()
	return strings.TrimSpace(value), mapErr(err)
}

func (t *Terminal) Secret(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}
	value, err := prompt.Run()
	return value, mapErr(err)
}

func (t *Terminal) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, mapErr(err)
	}
	return true, nil
}

func (t *Terminal) Println(a ...any) {
	out := t.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, a...)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, promptui.ErrInterrupt):
		return ErrInterrupted
	case errors.Is(err, promptui.ErrEOF):
		return ErrEOF
	}
	return err
}

// Int wraps validate for numeric inputs.
func Int(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.New("enter a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("enter a number between %d and %d", lo, hi)
		}
		return nil
	}
}

// Required rejects blank input.
func Required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("this field is required")
	}
	return nil
}
