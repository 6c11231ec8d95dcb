package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/manifoldco/promptui"
)

func TestScriptSelect(t *testing.T) {
	s := NewScript("Log in", "op-1", "nope")
	items := []string{"Create an account", "Log in", "Exit"}

	idx, value, err := s.Select("menu", items)
	if err != nil || idx != 1 || value != "Log in" {
		t.Fatalf("unexpected exact select: %d %q %v", idx, value, err)
	}

	idx, value, err = s.Select("matches", []string{"op-1 Frontend at Nubank", "op-2 Backend at Itaú"})
	if err != nil || idx != 0 || !strings.HasPrefix(value, "op-1") {
		t.Fatalf("unexpected prefix select: %d %q %v", idx, value, err)
	}

	if _, _, err := s.Select("menu", items); err == nil || !strings.Contains(err.Error(), "not an option") {
		t.Fatalf("expected unknown option error, got %v", err)
	}

	if _, _, err := s.Select("menu", items); !errors.Is(err, ErrEOF) {
		t.Fatalf("expected ErrEOF once answers run out, got %v", err)
	}

	if asked := s.Asked(); len(asked) != 4 || asked[1] != "matches" {
		t.Fatalf("unexpected asked labels %v", asked)
	}
}

func TestScriptInterrupt(t *testing.T) {
	s := NewScript("Ana", Interrupt)

	if name, err := s.Input("Full name", "", nil); err != nil || name != "Ana" {
		t.Fatalf("unexpected input %q (%v)", name, err)
	}
	if _, err := s.Input("Document", "", nil); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}
	if _, err := s.Secret("Password"); !errors.Is(err, ErrEOF) {
		t.Fatalf("expected ErrEOF after the last answer, got %v", err)
	}
}

func TestScriptInput(t *testing.T) {
	s := NewScript("", "  Ana  ", "abc", "7")

	value, err := s.Input("name", "Bia", nil)
	if err != nil || value != "Bia" {
		t.Fatalf("empty answer should keep the initial value, got %q %v", value, err)
	}

	value, err = s.Input("name", "", Required)
	if err != nil || value != "Ana" {
		t.Fatalf("unexpected trimmed value %q %v", value, err)
	}

	if _, err := s.Input("age", "", Int(1, 5)); err == nil {
		t.Fatalf("expected validation error")
	}

	if _, err := s.Input("age", "", Int(1, 5)); err == nil || !strings.Contains(err.Error(), "between 1 and 5") {
		t.Fatalf("expected range error, got %v", err)
	}

	if s.Remaining() != 0 {
		t.Fatalf("expected every answer consumed, %d left", s.Remaining())
	}
}

func TestScriptConfirmAndOutput(t *testing.T) {
	s := NewScript("Y", "no", "secret")

	if ok, err := s.Confirm("terms"); err != nil || !ok {
		t.Fatalf("expected confirmation, got %v %v", ok, err)
	}
	if ok, err := s.Confirm("terms"); err != nil || ok {
		t.Fatalf("expected refusal, got %v %v", ok, err)
	}
	if value, err := s.Secret("password"); err != nil || value != "secret" {
		t.Fatalf("unexpected secret %q %v", value, err)
	}

	s.Println("Error:", "boom")
	s.Println("done")
	if out := s.Output(); out != "Error: boom\ndone" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInt(t *testing.T) {
	t.Parallel()

	validate := Int(1, 5)
	cases := map[string]bool{
		"1":   true,
		" 5 ": true,
		"0":   false,
		"6":   false,
		"":    false,
		"2.5": false,
	}
	for input, ok := range cases {
		if err := validate(input); (err == nil) != ok {
			t.Fatalf("Int(1, 5)(%q) = %v, want ok=%v", input, err, ok)
		}
	}
}

func TestMapErr(t *testing.T) {
	t.Parallel()

	if err := mapErr(promptui.ErrInterrupt); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted for ^C, got %v", err)
	}
	if err := mapErr(promptui.ErrEOF); !errors.Is(err, ErrEOF) {
		t.Fatalf("expected ErrEOF for ^D, got %v", err)
	}
	other := errors.New("terminal gone")
	if err := mapErr(other); err != other {
		t.Fatalf("unexpected mapping %v", err)
	}
	if err := mapErr(nil); err != nil {
		t.Fatalf("unexpected error for nil: %v", err)
	}
}
