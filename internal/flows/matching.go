package flows

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/scoring"
	"github.com/ravyz/ravyz/internal/utils"
	"github.com/ravyz/ravyz/internal/wizard"
)

const (
	WizardMatching = "matching"

	maxMotivations   = 3
	motivationSalary = "higher salary"
	motivationRemote = "remote work"
)

// CurrentJob is the candidate's self-report of where they work today.
type CurrentJob struct {
	Position string
	Company  string
	Salary   int
	// Months in the current role.
	Months int
}

type Matching struct {
	Current CurrentJob
	// Satisfaction rates each aspect 1..5.
	Satisfaction map[string]int
	Motivations  []string
}

func NewMatching() *Matching {
	return &Matching{Satisfaction: make(map[string]int)}
}

func MatchingSteps() []wizard.Step[*Matching] {
	return []wizard.Step[*Matching]{
		{Name: "current-job", Check: checkCurrentJob},
		{Name: "satisfaction", Check: checkSatisfaction},
		{Name: "motivations", Check: checkMotivations},
	}
}

func NewMatchingWizard(m *Matching, opts ...wizard.Option[*Matching]) (*wizard.Wizard[*Matching], error) {
	return wizard.New(WizardMatching, m, MatchingSteps(), opts...)
}

func checkCurrentJob(m *Matching, _ int) error {
	var problems []string
	if strings.TrimSpace(m.Current.Position) == "" {
		problems = append(problems, "current position")
	}
	if m.Current.Salary < 0 {
		problems = append(problems, "non-negative salary")
	}
	if m.Current.Months < 0 {
		problems = append(problems, "non-negative time in role")
	}
	return missing(problems)
}

func checkSatisfaction(m *Matching, _ int) error {
	var unrated []string
	for _, aspect := range catalog.SatisfactionAspects {
		v, ok := m.Satisfaction[aspect]
		if !ok || float64(v) < catalog.ScaleMin || float64(v) > catalog.ScaleMax {
			unrated = append(unrated, aspect)
		}
	}
	if len(unrated) > 0 {
		return fmt.Errorf("missing ratings for %s", strings.Join(unrated, ", "))
	}
	return nil
}

func checkMotivations(m *Matching, _ int) error {
	if len(m.Motivations) == 0 {
		return errors.New("missing at least one motivation")
	}
	if len(m.Motivations) > maxMotivations {
		return fmt.Errorf("pick at most %d motivations", maxMotivations)
	}
	for _, tag := range m.Motivations {
		if !knownMotivation(tag) {
			return fmt.Errorf("unknown motivation %q", tag)
		}
	}
	return nil
}

func knownMotivation(tag string) bool {
	key := utils.NormalizeKey(tag)
	return slices.ContainsFunc(catalog.Motivations, func(m string) bool {
		return utils.NormalizeKey(m) == key
	})
}

// ToggleMotivation adds a tag that is not chosen yet and removes one that is.
// Adding beyond the limit is rejected.
func (m *Matching) ToggleMotivation(tag string) error {
	if !knownMotivation(tag) {
		return fmt.Errorf("unknown motivation %q", tag)
	}

	key := utils.NormalizeKey(tag)
	for i, existing := range m.Motivations {
		if utils.NormalizeKey(existing) == key {
			m.Motivations = slices.Delete(m.Motivations, i, i+1)
			return nil
		}
	}

	if len(m.Motivations) >= maxMotivations {
		return fmt.Errorf("pick at most %d motivations", maxMotivations)
	}
	m.Motivations = append(m.Motivations, tag)
	return nil
}

func (m *Matching) wants(tag string) bool {
	key := utils.NormalizeKey(tag)
	return slices.ContainsFunc(m.Motivations, func(t string) bool {
		return utils.NormalizeKey(t) == key
	})
}

// LowestRated returns the aspects with the lowest satisfaction rating.
func (m *Matching) LowestRated() []string {
	lowest := int(catalog.ScaleMax) + 1
	var aspects []string
	for _, aspect := range catalog.SatisfactionAspects {
		v, ok := m.Satisfaction[aspect]
		if !ok {
			continue
		}
		switch {
		case v < lowest:
			lowest = v
			aspects = []string{aspect}
		case v == lowest:
			aspects = append(aspects, aspect)
		}
	}
	return aspects
}

// Results ranks catalog opportunities for a candidate who wants to move.
// Choosing "higher salary" drops opportunities that cannot pay more than the
// current salary; choosing "remote work" prefers remote positions when the
// profile has no work mode of its own.
func (m *Matching) Results(profile scoring.CandidateProfile) []scoring.RankedOpportunity {
	if profile.WorkMode == "" && m.wants(motivationRemote) {
		profile.WorkMode = catalog.Remote
	}

	opportunities := catalog.Opportunities
	if m.wants(motivationSalary) && m.Current.Salary > 0 {
		opportunities = make([]catalog.Opportunity, 0, len(catalog.Opportunities))
		for _, opp := range catalog.Opportunities {
			if opp.SalaryMax > m.Current.Salary {
				opportunities = append(opportunities, opp)
			}
		}
	}

	return scoring.RankOpportunities(profile, opportunities)
}
