// Package wizard implements the linear step wizard behind every chained form:
// a sequence of named steps, each optionally split into pages, gated by a
// per-step completeness check.
package wizard

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrIncomplete is returned by Next while the current page misses required input.
	ErrIncomplete = errors.New("step is incomplete")
	// ErrFinished is returned when moving a wizard that already completed or exited.
	ErrFinished = errors.New("wizard is finished")
)

// Check reports why the draft cannot leave the given page of a step.
// A nil error means the page is complete.
type Check[D any] func(draft D, page int) error

type Step[D any] struct {
	Name string
	// Pages is the length of the step's sub-sequence. Values below 1 mean 1.
	Pages int
	// Check gates Next. A nil Check always allows advancing.
	Check Check[D]
}

func (s Step[D]) pages() int {
	if s.Pages < 1 {
		return 1
	}
	return s.Pages
}

// Outcome describes what a navigation call did.
type Outcome int

const (
	Moved Outcome = iota
	Completed
	Exited
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Completed:
		return "completed"
	case Exited:
		return "exited"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type Wizard[D any] struct {
	name  string
	draft D
	steps []Step[D]

	step      int
	page      int
	finished  bool
	completed bool

	onComplete func(D) error
	onExit     func()
	logger     *zap.Logger
}

type Option[D any] func(*Wizard[D])

// OnComplete sets the callback receiving the draft when the last page is left.
// A callback error keeps the wizard on the last page.
func OnComplete[D any](fn func(D) error) Option[D] {
	return func(w *Wizard[D]) { w.onComplete = fn }
}

// OnExit sets the callback invoked when going back from the first page.
func OnExit[D any](fn func()) Option[D] {
	return func(w *Wizard[D]) { w.onExit = fn }
}

func WithLogger[D any](logger *zap.Logger) Option[D] {
	return func(w *Wizard[D]) { w.logger = logger }
}

// New builds a wizard over draft. Drafts are usually pointers so that
// screens and checks share the same state.
func New[D any](name string, draft D, steps []Step[D], opts ...Option[D]) (*Wizard[D], error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("wizard %q has no steps", name)
	}

	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		key := strings.TrimSpace(s.Name)
		if key == "" {
			return nil, fmt.Errorf("wizard %q: step %d has no name", name, i)
		}
		if seen[key] {
			return nil, fmt.Errorf("wizard %q: duplicate step %q", name, key)
		}
		seen[key] = true
	}

	w := &Wizard[D]{
		name:  name,
		draft: draft,
		steps: steps,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}

	return w, nil
}

func (w *Wizard[D]) Name() string { return w.name }

func (w *Wizard[D]) Draft() D { return w.draft }

// Current returns the active step.
func (w *Wizard[D]) Current() Step[D] { return w.steps[w.step] }

// Position returns the step index and the page inside it.
func (w *Wizard[D]) Position() (step, page int) { return w.step, w.page }

func (w *Wizard[D]) Steps() []Step[D] { return w.steps }

func (w *Wizard[D]) Finished() bool { return w.finished }

// Completed reports whether the wizard ended through its last page.
func (w *Wizard[D]) Completed() bool { return w.completed }

// Missing returns why the current page cannot be left, or nil.
func (w *Wizard[D]) Missing() error {
	check := w.steps[w.step].Check
	if check == nil {
		return nil
	}
	return check(w.draft, w.page)
}

// CanAdvance reports whether Next would move forward.
func (w *Wizard[D]) CanAdvance() bool {
	return !w.finished && w.Missing() == nil
}

// Next moves to the next page, then the next step, and completes the wizard
// after the last page of the last step.
func (w *Wizard[D]) Next() (Outcome, error) {
	if w.finished {
		return Moved, ErrFinished
	}

	if err := w.Missing(); err != nil {
		return Moved, fmt.Errorf("%w: %s: %v", ErrIncomplete, w.steps[w.step].Name, err)
	}

	current := w.steps[w.step]
	switch {
	case w.page < current.pages()-1:
		w.page++
	case w.step < len(w.steps)-1:
		w.step++
		w.page = 0
	default:
		if w.onComplete != nil {
			if err := w.onComplete(w.draft); err != nil {
				return Moved, err
			}
		}
		w.finished = true
		w.completed = true
		w.logger.Debug("wizard completed", zap.String("wizard", w.name))
		return Completed, nil
	}

	w.logger.Debug("wizard moved forward",
		zap.String("wizard", w.name),
		zap.String("step", w.steps[w.step].Name),
		zap.Int("page", w.page),
	)
	return Moved, nil
}

// Prev moves one page back. From the first page of a step it goes to the last
// page of the previous step; from the very first page it exits.
func (w *Wizard[D]) Prev() (Outcome, error) {
	if w.finished {
		return Moved, ErrFinished
	}

	switch {
	case w.page > 0:
		w.page--
	case w.step > 0:
		w.step--
		w.page = w.steps[w.step].pages() - 1
	default:
		w.finished = true
		if w.onExit != nil {
			w.onExit()
		}
		w.logger.Debug("wizard exited", zap.String("wizard", w.name))
		return Exited, nil
	}

	return Moved, nil
}

// Progress returns the share of pages already left behind, 0..100.
func (w *Wizard[D]) Progress() int {
	if w.completed {
		return 100
	}

	total, done := 0, 0
	for i, s := range w.steps {
		total += s.pages()
		if i < w.step {
			done += s.pages()
		}
	}
	done += w.page

	return int(math.Round(float64(done) / float64(total) * 100))
}
