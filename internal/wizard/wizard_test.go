package wizard

import (
	"errors"
	"testing"
)

type draft struct {
	name    string
	answers [3]string
	agreed  bool
}

func testSteps() []Step[*draft] {
	return []Step[*draft]{
		{
			Name: "name",
			Check: func(d *draft, _ int) error {
				if d.name == "" {
					return errors.New("name is required")
				}
				return nil
			},
		},
		{
			Name:  "answers",
			Pages: 3,
			Check: func(d *draft, page int) error {
				if d.answers[page] == "" {
					return errors.New("answer is required")
				}
				return nil
			},
		},
		{
			Name: "agree",
			Check: func(d *draft, _ int) error {
				if !d.agreed {
					return errors.New("terms must be accepted")
				}
				return nil
			},
		},
	}
}

func TestNewValidatesSteps(t *testing.T) {
	if _, err := New[*draft]("empty", &draft{}, nil); err == nil {
		t.Fatalf("expected error for wizard without steps")
	}

	if _, err := New("nameless", &draft{}, []Step[*draft]{{Name: " "}}); err == nil {
		t.Fatalf("expected error for nameless step")
	}

	if _, err := New("dup", &draft{}, []Step[*draft]{{Name: "a"}, {Name: "a"}}); err == nil {
		t.Fatalf("expected error for duplicate steps")
	}
}

func TestNextIsGatedByCheck(t *testing.T) {
	d := &draft{}
	w, err := New("test", d, testSteps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.CanAdvance() {
		t.Fatalf("expected CanAdvance false before required fields are set")
	}

	if _, err := w.Next(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if step, page := w.Position(); step != 0 || page != 0 {
		t.Fatalf("wizard must not move on incomplete step, at %d/%d", step, page)
	}

	d.name = "Ana"
	if !w.CanAdvance() || !w.CanAdvance() {
		t.Fatalf("expected CanAdvance to be true and deterministic once populated")
	}
}

func TestFullWalkthrough(t *testing.T) {
	d := &draft{name: "Ana", answers: [3]string{"a", "b", "c"}, agreed: true}

	var completed *draft
	w, err := New("test", d, testSteps(), OnComplete(func(got *draft) error {
		completed = got
		return nil
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := [][2]int{{1, 0}, {1, 1}, {1, 2}, {2, 0}}
	for _, pos := range expect {
		outcome, err := w.Next()
		if err != nil || outcome != Moved {
			t.Fatalf("unexpected next result: %v %v", outcome, err)
		}
		if step, page := w.Position(); step != pos[0] || page != pos[1] {
			t.Fatalf("expected position %v, got %d/%d", pos, step, page)
		}
	}

	if got := w.Progress(); got != 80 {
		t.Fatalf("expected progress 80, got %d", got)
	}

	outcome, err := w.Next()
	if err != nil || outcome != Completed {
		t.Fatalf("expected completion, got %v %v", outcome, err)
	}
	if completed != d {
		t.Fatalf("expected completion callback with the draft")
	}
	if w.Progress() != 100 || !w.Completed() {
		t.Fatalf("expected completed wizard at 100%%")
	}

	if _, err := w.Next(); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}
}

func TestPrevNavigation(t *testing.T) {
	d := &draft{name: "Ana", answers: [3]string{"a", "b", "c"}}
	exited := false
	w, err := New("test", d, testSteps(), OnExit[*draft](func() { exited = true }))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 4; i++ {
		if _, err := w.Next(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// From the first page of "agree" back to the last page of "answers".
	if _, err := w.Prev(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step, page := w.Position(); step != 1 || page != 2 {
		t.Fatalf("expected last page of previous step, got %d/%d", step, page)
	}

	if _, err := w.Prev(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step, page := w.Position(); step != 1 || page != 1 {
		t.Fatalf("expected previous page, got %d/%d", step, page)
	}

	w.Prev()
	w.Prev()
	outcome, err := w.Prev()
	if err != nil || outcome != Exited {
		t.Fatalf("expected exit from first page, got %v %v", outcome, err)
	}
	if !exited {
		t.Fatalf("expected exit callback")
	}
	if w.Completed() {
		t.Fatalf("exited wizard must not be completed")
	}
}

func TestCompletionErrorKeepsWizardOpen(t *testing.T) {
	d := &draft{name: "Ana"}
	boom := errors.New("backend down")
	w, err := New("single", d, testSteps()[:1], OnComplete(func(*draft) error { return boom }))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := w.Next(); !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if w.Finished() {
		t.Fatalf("wizard must stay open after failed completion")
	}
}

func TestOutcomeString(t *testing.T) {
	if Completed.String() != "completed" || Outcome(9).String() != "outcome(9)" {
		t.Fatalf("unexpected outcome strings")
	}
}
