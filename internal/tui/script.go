package tui

import (
	"fmt"
	"strings"
	"sync"
)

// Interrupt is a Script answer that behaves like Ctrl+C.
const Interrupt = "^C"

// Script is a Prompter replaying canned answers, one per prompt. It lets
// screens run without a terminal. Running out of answers is ErrEOF.
type Script struct {
	mu      sync.Mutex
	answers []string
	lines   []string
	asked   []string
}

func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

func (s *Script) next(label string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.asked = append(s.asked, label)
	if len(s.answers) == 0 {
		return "", ErrEOF
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if answer == Interrupt {
		return "", ErrInterrupted
	}
	return answer, nil
}

// Select picks the item equal to the answer, or starting with it.
func (s *Script) Select(label string, items []string) (int, string, error) {
	answer, err := s.next(label)
	if err != nil {
		return -1, "", err
	}
	for i, item := range items {
		if item == answer {
			return i, item, nil
		}
	}
	for i, item := range items {
		if strings.HasPrefix(item, answer) {
			return i, item, nil
		}
	}
	return -1, "", fmt.Errorf("script: %q is not an option of %q (%s)", answer, label, strings.Join(items, " | "))
}

func (s *Script) Input(label, initial string, validate func(string) error) (string, error) {
	answer, err := s.next(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		answer = initial
	}
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", fmt.Errorf("script: invalid answer %q for %q: %w", answer, label, err)
		}
	}
	return strings.TrimSpace(answer), nil
}

func (s *Script) Secret(label string) (string, error) {
	return s.next(label)
}

func (s *Script) Confirm(label string) (bool, error) {
	answer, err := s.next(label)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (s *Script) Println(a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
}

// Output returns everything printed so far.
func (s *Script) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.lines, "\n")
}

// Remaining reports how many answers were not consumed.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// Asked returns the prompt labels in the order they were shown.
func (s *Script) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}
