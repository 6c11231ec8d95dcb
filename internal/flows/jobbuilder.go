package flows

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/ravyz"
	"github.com/ravyz/ravyz/internal/scoring"
	"github.com/ravyz/ravyz/internal/utils"
	"github.com/ravyz/ravyz/internal/wizard"
)

const (
	WizardJobBuilder = "job_builder"

	minTitleLength       = 3
	minDescriptionLength = 20
)

type JobDraft struct {
	Title        string
	Description  string
	Location     string
	Level        string
	Requirements []string
	WorkMode     catalog.WorkMode
	SalaryMin    int
	SalaryMax    int
}

func JobBuilderSteps() []wizard.Step[*JobDraft] {
	return []wizard.Step[*JobDraft]{
		{Name: "basics", Check: checkBasics},
		{Name: "requirements", Check: checkRequirements},
		{Name: "compensation", Check: checkCompensation},
		{Name: "review", Check: func(j *JobDraft, _ int) error {
			return Validate(SchemaJob, j.Payload())
		}},
	}
}

func NewJobBuilder(j *JobDraft, opts ...wizard.Option[*JobDraft]) (*wizard.Wizard[*JobDraft], error) {
	return wizard.New(WizardJobBuilder, j, JobBuilderSteps(), opts...)
}

func checkBasics(j *JobDraft, _ int) error {
	var problems []string
	if len([]rune(strings.TrimSpace(j.Title))) < minTitleLength {
		problems = append(problems, "title")
	}
	if len([]rune(strings.TrimSpace(j.Description))) < minDescriptionLength {
		problems = append(problems, fmt.Sprintf("description of at least %d characters", minDescriptionLength))
	}
	if strings.TrimSpace(j.Location) == "" {
		problems = append(problems, "location")
	}
	if j.Level != "" && !slices.Contains(catalog.Levels, j.Level) {
		problems = append(problems, "known level")
	}
	return missing(problems)
}

func checkRequirements(j *JobDraft, _ int) error {
	if len(j.requirements()) == 0 {
		return errors.New("missing at least one requirement")
	}
	return nil
}

func checkCompensation(j *JobDraft, _ int) error {
	var problems []string
	if !slices.Contains(catalog.WorkModes, j.WorkMode) {
		problems = append(problems, "work mode")
	}
	if j.SalaryMin < 0 || j.SalaryMax < 0 {
		problems = append(problems, "non-negative salary")
	} else if j.SalaryMax > 0 && j.SalaryMax < j.SalaryMin {
		problems = append(problems, "maximum salary not below the minimum")
	}
	return missing(problems)
}

// AddRequirement appends a requirement unless it is blank or already listed.
func (j *JobDraft) AddRequirement(req string) bool {
	req = strings.TrimSpace(req)
	if req == "" {
		return false
	}
	key := utils.NormalizeKey(req)
	for _, existing := range j.Requirements {
		if utils.NormalizeKey(existing) == key {
			return false
		}
	}
	j.Requirements = append(j.Requirements, req)
	return true
}

func (j *JobDraft) requirements() []string {
	out := make([]string, 0, len(j.Requirements))
	for _, r := range j.Requirements {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Payload is the subset of the draft posted to the jobs endpoint.
func (j *JobDraft) Payload() ravyz.JobInput {
	return ravyz.JobInput{
		Title:        strings.TrimSpace(j.Title),
		Description:  strings.TrimSpace(j.Description),
		Location:     strings.TrimSpace(j.Location),
		Requirements: j.requirements(),
		WorkMode:     string(j.WorkMode),
		Level:        j.Level,
		SalaryMin:    j.SalaryMin,
		SalaryMax:    j.SalaryMax,
	}
}

// Recommendations ranks the mocked candidates for the drafted job.
func (j *JobDraft) Recommendations() []scoring.RankedCandidate {
	return scoring.RankCandidates(j.requirements(), catalog.Candidates)
}
