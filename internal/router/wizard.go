package router

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/logger"
	"github.com/ravyz/ravyz/internal/tui"
	"github.com/ravyz/ravyz/internal/wizard"
)

const (
	actionContinue = "Continue"
	actionBack     = "Back"
	actionDone     = "Done"
)

// filler prompts for the inputs of one wizard page and writes them into the draft.
type filler[D any] func(ctx context.Context, r *Router, draft D, step string, page int) error

// runWizard drives w until it completes or exits. Every page is filled, then
// the user picks Continue or Back. Interrupting a prompt of the page (Ctrl+C)
// is the same as Back. An incomplete page or a failing completion
// callback is reported and the same page is shown again.
func runWizard[D any](ctx context.Context, r *Router, w *wizard.Wizard[D], fill filler[D]) (wizard.Outcome, error) {
	log := logger.WithFields(r.logger, logger.StringFields(logger.StringField{Key: logger.FieldWizard, Value: w.Name()})...)

	for {
		_, page := w.Position()
		current := w.Current()

		title := current.Name
		if current.Pages > 1 {
			title = fmt.Sprintf("%s %d/%d", title, page+1, current.Pages)
		}
		r.println(fmt.Sprintf("[%3d%%] %s (Ctrl+C to go back)", w.Progress(), title))

		action := actionBack
		err := fill(ctx, r, w.Draft(), current.Name, page)
		if err == nil {
			_, action, err = r.deps.Prompter.Select("Next", []string{actionContinue, actionBack})
		}
		switch {
		case errors.Is(err, tui.ErrInterrupted):
			action = actionBack
		case err != nil:
			return wizard.Moved, err
		}

		var outcome wizard.Outcome
		if action == actionBack {
			outcome, err = w.Prev()
		} else {
			outcome, err = w.Next()
		}

		switch {
		case errors.Is(err, wizard.ErrIncomplete):
			r.println(err.Error())
			continue
		case err != nil:
			log.Warn("wizard step failed", zap.String("step", current.Name), zap.Error(err))
			r.println("Error:", describeError(err))
			continue
		}

		if outcome == wizard.Completed || outcome == wizard.Exited {
			r.deps.Metrics.WizardFinished(w.Name(), outcome.String())
			log.Info("wizard finished", zap.String("outcome", outcome.String()))
			return outcome, nil
		}
	}
}

// optionalInt accepts an empty answer or a non-negative whole number.
func optionalInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return errors.New("enter a non-negative whole number")
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// splitList splits a comma separated answer, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// firstField is the id prefix of a select label.
func firstField(label string) string {
	if fields := strings.Fields(label); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
