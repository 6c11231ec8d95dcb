package filtering

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/ai"
	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/scoring"
	"github.com/ravyz/ravyz/internal/utils"
)

type minimumMatchFilter struct {
	minimum int
}

// NewMinimumMatch creates a filter that drops opportunities below the configured match.
func NewMinimumMatch() Filter {
	return &minimumMatchFilter{}
}

func (f *minimumMatchFilter) Name() string { return "minimum_match" }

func (f *minimumMatchFilter) Disable(string) {}

func (f *minimumMatchFilter) IsEnabled() bool { return true }

func (f *minimumMatchFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg == nil {
		return nil
	}
	if cfg.MinimumMatch < 0 || cfg.MinimumMatch > 100 {
		return fmt.Errorf("minimum match must be within 0..100, got %d", cfg.MinimumMatch)
	}
	f.minimum = cfg.MinimumMatch
	return nil
}

func (f *minimumMatchFilter) Apply(_ context.Context, deps Deps, o *Opportunities) (*Opportunities, Step, error) {
	initial := o.Len()
	if f.minimum == 0 {
		return o, Step{Initial: initial, Left: initial}, nil
	}

	removed := o.RemoveIf(func(item scoring.RankedOpportunity) bool {
		return item.Match < f.minimum
	})
	if len(removed) > 0 {
		deps.Logger.Info("excluding opportunities below minimum match",
			zap.Int("minimum_match", f.minimum),
			zap.Strings("excluded_opportunities", removed),
			zap.Int("opportunities_left", o.Len()),
		)
	}

	return o, Step{Initial: initial, Dropped: len(removed), Left: o.Len()}, nil
}

func (f *minimumMatchFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{
		"minimum_match": strconv.Itoa(f.minimum),
	}}
}

type salaryFloorFilter struct {
	floor int
}

// NewSalaryFloor creates a filter that drops opportunities whose range tops out below the floor.
func NewSalaryFloor() Filter {
	return &salaryFloorFilter{}
}

func (f *salaryFloorFilter) Name() string { return "salary_floor" }

func (f *salaryFloorFilter) Disable(string) {}

func (f *salaryFloorFilter) IsEnabled() bool { return true }

func (f *salaryFloorFilter) Validate(cfg *Config) error {
	f.floor = 0
	if cfg == nil {
		return nil
	}
	if cfg.SalaryFloor < 0 {
		return errors.New("salary floor must not be negative")
	}
	f.floor = cfg.SalaryFloor
	return nil
}

func (f *salaryFloorFilter) Apply(_ context.Context, deps Deps, o *Opportunities) (*Opportunities, Step, error) {
	initial := o.Len()
	if f.floor == 0 {
		return o, Step{Initial: initial, Left: initial}, nil
	}

	removed := o.RemoveIf(func(item scoring.RankedOpportunity) bool {
		return item.Opportunity.SalaryMax < f.floor
	})
	if len(removed) > 0 {
		deps.Logger.Info("excluding opportunities below salary floor",
			zap.Int("salary_floor", f.floor),
			zap.Strings("excluded_opportunities", removed),
			zap.Int("opportunities_left", o.Len()),
		)
	}

	return o, Step{Initial: initial, Dropped: len(removed), Left: o.Len()}, nil
}

func (f *salaryFloorFilter) Status() Status {
	details := map[string]string{}
	if f.floor > 0 {
		details["salary_floor"] = strconv.Itoa(f.floor)
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type companiesFilter struct {
	companies []string
}

// NewCompanies creates a filter that removes opportunities of companies listed in the config.
// Companies may be given by id or by name.
func NewCompanies() Filter {
	return &companiesFilter{}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Disable(string) {}

func (f *companiesFilter) IsEnabled() bool { return true }

func (f *companiesFilter) Validate(cfg *Config) error {
	f.companies = nil
	if cfg == nil {
		return nil
	}
	for _, raw := range cfg.ExcludedCompanies {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		company := catalog.CompanyByName(raw)
		if company == nil {
			return fmt.Errorf("unknown company %q", raw)
		}
		f.companies = append(f.companies, company.ID)
	}
	return nil
}

func (f *companiesFilter) Apply(_ context.Context, deps Deps, o *Opportunities) (*Opportunities, Step, error) {
	initial := o.Len()
	if len(f.companies) == 0 {
		return o, Step{Initial: initial, Left: initial}, nil
	}

	excluded := make(map[string]bool, len(f.companies))
	for _, id := range f.companies {
		excluded[id] = true
	}
	removed := o.RemoveIf(func(item scoring.RankedOpportunity) bool {
		return excluded[item.Opportunity.CompanyID]
	})
	if len(removed) > 0 {
		deps.Logger.Info("excluding opportunities by companies",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_opportunities", removed),
			zap.Int("opportunities_left", o.Len()),
		)
	}

	return o, Step{Initial: initial, Dropped: len(removed), Left: o.Len()}, nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes opportunities listed in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, o *Opportunities) (*Opportunities, Step, error) {
	initial := o.Len()
	if f.path == "" {
		return o, Step{Initial: initial, Left: initial}, nil
	}

	excluded, err := ReadExcluded(deps.Fs, f.path)
	if err != nil {
		return o, Step{}, fmt.Errorf("getting excluded opportunities from file: %w", err)
	}

	removed := o.Exclude(excluded.IDs())
	if len(removed) > 0 {
		deps.Logger.Info("excluding opportunities based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_opportunities", removed),
			zap.Int("opportunities_left", o.Len()),
		)
	}

	return o, Step{Initial: initial, Dropped: len(removed), Left: o.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type aiFitFilter struct {
	disabled    bool
	reason      string
	config      *AIConfig
	assessments map[string]*ai.FitAssessment
}

// NewAIFit creates the AI-based filtering step.
func NewAIFit() Filter {
	return &aiFitFilter{}
}

func (f *aiFitFilter) Name() string { return "ai_fit" }

func (f *aiFitFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *aiFitFilter) IsEnabled() bool { return !f.disabled }

func (f *aiFitFilter) Validate(cfg *Config) error {
	f.config = nil
	if cfg != nil {
		f.config = cfg.AI
	}
	if f.config == nil || !f.config.Enabled {
		return nil
	}
	if f.config.Gemini == nil {
		return errors.New("gemini configuration is required when ai filter is enabled")
	}
	if strings.TrimSpace(f.config.Gemini.Model) == "" {
		return errors.New("gemini model is required when ai filter is enabled")
	}
	return nil
}

func (f *aiFitFilter) Apply(ctx context.Context, deps Deps, o *Opportunities) (*Opportunities, Step, error) {
	initial := o.Len()
	f.assessments = map[string]*ai.FitAssessment{}

	if f.config == nil || !f.config.Enabled {
		return o, Step{Initial: initial, Left: initial}, nil
	}
	if deps.Matcher == nil {
		deps.Logger.Info("ai matcher is not configured; skipping ai_fit filter")
		return o, Step{Initial: initial, Left: initial}, nil
	}

	approved := make([]scoring.RankedOpportunity, 0, initial)
	for _, item := range o.Items {
		id := item.Opportunity.ID
		assessment, err := deps.Matcher.Evaluate(ctx, deps.Candidate, item.Opportunity)
		if err != nil {
			if ctx.Err() != nil {
				return o, Step{}, ctx.Err()
			}
			deps.Logger.Warn("AI evaluation failed", zap.String("opportunity_id", id), zap.Error(err))
			approved = append(approved, item)
			continue
		}

		if !assessment.Fit {
			deps.Logger.Info("opportunity rejected by AI provider",
				zap.String("opportunity_id", id),
				zap.Float64("ai_score", assessment.Score),
				zap.String("reason", utils.TruncateForLog(assessment.Reason, 200)),
			)
			continue
		}

		deps.Logger.Info("opportunity approved by AI",
			zap.String("opportunity_id", id),
			zap.Float64("ai_score", assessment.Score),
		)
		if assessment.Reason != "" {
			item.Reasons = append(item.Reasons, assessment.Reason)
		}
		approved = append(approved, item)
		f.assessments[id] = assessment
	}

	o.Items = approved
	return o, Step{Initial: initial, Dropped: initial - o.Len(), Left: o.Len()}, nil
}

func (f *aiFitFilter) Assessments() map[string]*ai.FitAssessment {
	if f.assessments == nil {
		return map[string]*ai.FitAssessment{}
	}
	return f.assessments
}

func (f *aiFitFilter) Status() Status {
	details := map[string]string{}
	enabled := f.IsEnabled() && f.config != nil && f.config.Enabled
	reason := f.reason
	if f.IsEnabled() && !enabled && reason == "" {
		reason = "ai is disabled in config"
	}
	if f.config != nil {
		details["minimum_fit_score"] = fmt.Sprintf("%.2f", f.config.MinimumFitScore)
		if f.config.Gemini != nil {
			details["model"] = f.config.Gemini.Model
			details["max_retries"] = strconv.Itoa(f.config.Gemini.MaxRetries)
			details["max_log_length"] = strconv.Itoa(f.config.Gemini.MaxLogLength)
		}
	}
	return Status{Name: f.Name(), Enabled: enabled, Reason: reason, Details: details}
}
