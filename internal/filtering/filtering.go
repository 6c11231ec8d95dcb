// Package filtering narrows ranked opportunities through a sequence of
// independent filter steps before they are shown as matches.
package filtering

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/ai"
	"github.com/ravyz/ravyz/internal/scoring"
)

// Filter represents a single filtering step applied to opportunities.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, o *Opportunities) (*Opportunities, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger    *zap.Logger
	Fs        afero.Fs
	Candidate scoring.CandidateProfile
	Matcher   ai.Matcher
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	MinimumMatch      int
	SalaryFloor       int
	ExcludedCompanies []string
	ExcludeFile       string
	AI                *AIConfig
}

// AIConfig stores AI-related configuration used by the filters.
type AIConfig struct {
	Enabled         bool
	MinimumFitScore float64
	Gemini          *GeminiConfig
}

// GeminiConfig stores Gemini provider configuration.
type GeminiConfig struct {
	Model        string
	MaxRetries   int
	MaxLogLength int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// Opportunities is the working list passed through the filters.
type Opportunities struct {
	Items []scoring.RankedOpportunity
}

func (o *Opportunities) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Items)
}

// IDs returns the opportunity ids in list order.
func (o *Opportunities) IDs() []string {
	ids := make([]string, 0, o.Len())
	for _, item := range o.Items {
		ids = append(ids, item.Opportunity.ID)
	}
	return ids
}

// RemoveIf drops every item matching drop and returns the dropped ids.
func (o *Opportunities) RemoveIf(drop func(scoring.RankedOpportunity) bool) []string {
	var removed []string
	kept := o.Items[:0]
	for _, item := range o.Items {
		if drop(item) {
			removed = append(removed, item.Opportunity.ID)
			continue
		}
		kept = append(kept, item)
	}
	o.Items = kept
	return removed
}

// Exclude drops the opportunities with the given ids.
func (o *Opportunities) Exclude(ids []string) []string {
	targets := make(map[string]bool, len(ids))
	for _, id := range ids {
		targets[id] = true
	}
	return o.RemoveIf(func(item scoring.RankedOpportunity) bool {
		return targets[item.Opportunity.ID]
	})
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Default returns the standard pipeline in execution order.
func Default() []Filter {
	return []Filter{
		NewMinimumMatch(),
		NewSalaryFloor(),
		NewCompanies(),
		NewExcludeFile(),
		NewAIFit(),
	}
}

// Run executes the supplied filters sequentially, returning the remaining
// opportunities and any AI assessments gathered on the way.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, o *Opportunities) (*Opportunities, map[string]*ai.FitAssessment, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	assessments := make(map[string]*ai.FitAssessment)
	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, o)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		o = next

		if collector, ok := step.(interface {
			Assessments() map[string]*ai.FitAssessment
		}); ok {
			for id, assessment := range collector.Assessments() {
				assessments[id] = assessment
			}
		}
	}

	return o, assessments, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
