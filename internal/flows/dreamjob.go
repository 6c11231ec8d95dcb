package flows

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/ravyz"
	"github.com/ravyz/ravyz/internal/scoring"
	"github.com/ravyz/ravyz/internal/utils"
	"github.com/ravyz/ravyz/internal/wizard"
)

const (
	WizardDreamJob = "dream_job"
	// QuestionsPerPage is the questionnaire page size.
	QuestionsPerPage = 4
)

type DreamJob struct {
	Position   string
	Level      string
	Industry   string
	City       string
	WorkMode   catalog.WorkMode
	HardSkills []string
	// Answers maps question ids to 1..5 agreement.
	Answers   map[string]int
	Companies map[string]bool
	SalaryMin int
	SalaryMax int
	// Benefits is ordered by priority, most wanted first.
	Benefits []string
	// Culture is the stored vector of a restored profile, used until the
	// questionnaire is answered again.
	Culture catalog.Profile
}

func NewDreamJob() *DreamJob {
	return &DreamJob{
		Answers:   make(map[string]int),
		Companies: make(map[string]bool),
		Benefits:  slices.Clone(catalog.Benefits),
	}
}

func DreamJobSteps() []wizard.Step[*DreamJob] {
	pages := catalog.QuestionPages(QuestionsPerPage)
	return []wizard.Step[*DreamJob]{
		{Name: "role", Check: checkRole},
		{
			Name:  "questionnaire",
			Pages: len(pages),
			Check: func(d *DreamJob, page int) error {
				if page < 0 || page >= len(pages) {
					return fmt.Errorf("unknown questionnaire page %d", page)
				}
				return checkAnswers(d, pages[page])
			},
		},
		{Name: "companies", Check: checkCompanies},
		{Name: "salary", Check: checkSalary},
		{Name: "benefits", Check: checkBenefits},
		{Name: "review"},
	}
}

func NewDreamJobWizard(d *DreamJob, opts ...wizard.Option[*DreamJob]) (*wizard.Wizard[*DreamJob], error) {
	return wizard.New(WizardDreamJob, d, DreamJobSteps(), opts...)
}

func checkRole(d *DreamJob, _ int) error {
	var problems []string
	if strings.TrimSpace(d.Position) == "" {
		problems = append(problems, "position")
	}
	if !slices.Contains(catalog.Levels, d.Level) {
		problems = append(problems, "level")
	}
	if !slices.Contains(catalog.WorkModes, d.WorkMode) {
		problems = append(problems, "work mode")
	}
	if len(d.HardSkills) == 0 {
		problems = append(problems, "at least one hard skill")
	}
	return missing(problems)
}

func checkAnswers(d *DreamJob, questions []catalog.Question) error {
	var unanswered []string
	for _, q := range questions {
		answer, ok := d.Answers[q.ID]
		if !ok || float64(answer) < catalog.ScaleMin || float64(answer) > catalog.ScaleMax {
			unanswered = append(unanswered, q.ID)
		}
	}
	if len(unanswered) > 0 {
		return fmt.Errorf("missing answers for %s", strings.Join(unanswered, ", "))
	}
	return nil
}

func checkCompanies(d *DreamJob, _ int) error {
	if len(d.SelectedCompanies()) == 0 {
		return errors.New("missing at least one company")
	}
	return nil
}

func checkSalary(d *DreamJob, _ int) error {
	if d.SalaryMin <= 0 {
		return errors.New("missing minimum salary")
	}
	if d.SalaryMax < d.SalaryMin {
		return errors.New("maximum salary must not be below the minimum")
	}
	return nil
}

func checkBenefits(d *DreamJob, _ int) error {
	if len(d.Benefits) == 0 {
		return errors.New("missing benefit priorities")
	}
	seen := make(map[string]bool, len(d.Benefits))
	for _, b := range d.Benefits {
		key := utils.NormalizeKey(b)
		if seen[key] {
			return fmt.Errorf("benefit %q is listed twice", b)
		}
		seen[key] = true
	}
	return nil
}

// ToggleCompany selects an unselected catalog company and deselects a
// selected one. Unknown ids are rejected.
func (d *DreamJob) ToggleCompany(id string) error {
	if catalog.CompanyByID(id) == nil {
		return fmt.Errorf("unknown company %q", id)
	}
	if d.Companies == nil {
		d.Companies = make(map[string]bool)
	}
	if d.Companies[id] {
		delete(d.Companies, id)
	} else {
		d.Companies[id] = true
	}
	return nil
}

// SelectedCompanies returns the selected company ids, sorted.
func (d *DreamJob) SelectedCompanies() []string {
	ids := make([]string, 0, len(d.Companies))
	for id, ok := range d.Companies {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// MoveBenefit moves the benefit at index from to index to, shifting the
// ones in between. The set of benefits never changes.
func (d *DreamJob) MoveBenefit(from, to int) error {
	n := len(d.Benefits)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("benefit position out of range: %d -> %d (have %d)", from, to, n)
	}
	if from == to {
		return nil
	}

	item := d.Benefits[from]
	d.Benefits = slices.Delete(d.Benefits, from, from+1)
	d.Benefits = slices.Insert(d.Benefits, to, item)
	return nil
}

// Profile derives the culture vector from the questionnaire answers, or
// returns the restored one when nothing was answered.
func (d *DreamJob) Profile() catalog.Profile {
	if len(d.Answers) == 0 && len(d.Culture) > 0 {
		return maps.Clone(d.Culture)
	}
	return scoring.UserProfile(d.Answers, catalog.Questions)
}

// CandidateProfile is the view of the draft used for ranking.
func (d *DreamJob) CandidateProfile() scoring.CandidateProfile {
	return scoring.CandidateProfile{
		HardSkills: d.HardSkills,
		City:       d.City,
		WorkMode:   d.WorkMode,
		SalaryMin:  d.SalaryMin,
		SalaryMax:  d.SalaryMax,
		Benefits:   d.Benefits,
		Profile:    d.Profile(),
	}
}

// ProfileUpdate is the subset of the draft sent to the candidate profile
// endpoint. Raw answers stay local; only the derived culture vector leaves.
func (d *DreamJob) ProfileUpdate() ravyz.CandidateProfile {
	culture := make(map[string]float64)
	for dim, v := range d.Profile() {
		culture[string(dim)] = v
	}

	return ravyz.CandidateProfile{
		Position:           strings.TrimSpace(d.Position),
		Level:              d.Level,
		Industry:           strings.TrimSpace(d.Industry),
		City:               strings.TrimSpace(d.City),
		WorkMode:           string(d.WorkMode),
		HardSkills:         d.HardSkills,
		SalaryMin:          d.SalaryMin,
		SalaryMax:          d.SalaryMax,
		Benefits:           d.Benefits,
		PreferredCompanies: d.SelectedCompanies(),
		Culture:            culture,
	}
}

// Synergies scores every catalog company against the questionnaire.
func (d *DreamJob) Synergies() []scoring.CompanySynergy {
	return scoring.CompanySynergies(catalog.Companies, d.Profile(), nil)
}

// DreamJobFromProfile restores a draft from the stored candidate profile.
// Questionnaire answers never leave the client, so they start empty and the
// stored culture vector stands in for them.
func DreamJobFromProfile(p *ravyz.CandidateProfile) *DreamJob {
	d := NewDreamJob()
	if p == nil {
		return d
	}

	d.Position = p.Position
	d.Level = p.Level
	d.Industry = p.Industry
	d.City = p.City
	d.WorkMode = catalog.WorkMode(p.WorkMode)
	d.HardSkills = slices.Clone(p.HardSkills)
	d.SalaryMin = p.SalaryMin
	d.SalaryMax = p.SalaryMax
	if len(p.Benefits) > 0 {
		d.Benefits = slices.Clone(p.Benefits)
	}
	for _, id := range p.PreferredCompanies {
		if catalog.CompanyByID(id) != nil {
			d.Companies[id] = true
		}
	}
	for _, dim := range catalog.Dimensions {
		if v, ok := p.Culture[string(dim)]; ok {
			if d.Culture == nil {
				d.Culture = make(catalog.Profile)
			}
			d.Culture[dim] = v
		}
	}
	return d
}
