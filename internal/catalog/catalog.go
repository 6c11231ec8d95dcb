// Package catalog holds the static, hand-authored data behind the RAVYZ
// screens: companies with synergy profiles, mocked candidates and
// opportunities, the questionnaire, the salary table and mentor personas.
package catalog

import (
	"strings"

	"github.com/ravyz/ravyz/internal/utils"
)

// Dimension is one axis of the culture profile used for synergy scores.
type Dimension string

const (
	Innovation    Dimension = "innovation"
	Stability     Dimension = "stability"
	Autonomy      Dimension = "autonomy"
	Collaboration Dimension = "collaboration"
	Growth        Dimension = "growth"
	Balance       Dimension = "balance"
)

// Dimensions lists every profile axis in display order.
var Dimensions = []Dimension{Innovation, Stability, Autonomy, Collaboration, Growth, Balance}

const (
	// ScaleMin and ScaleMax bound every answer and profile value.
	ScaleMin = 1.0
	ScaleMax = 5.0
)

// Profile maps dimensions to values on the 1..5 scale.
type Profile map[Dimension]float64

// WorkMode is where the work happens.
type WorkMode string

const (
	Remote WorkMode = "remote"
	Hybrid WorkMode = "hybrid"
	Onsite WorkMode = "onsite"
)

// WorkModes lists the accepted work modes.
var WorkModes = []WorkMode{Remote, Hybrid, Onsite}

// Levels lists the seniority levels understood by the salary table.
var Levels = []string{"junior", "mid", "senior", "lead"}

type Company struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Industry string   `json:"industry"`
	City     string   `json:"city"`
	Size     string   `json:"size"`
	Culture  []string `json:"culture"`
	Benefits []string `json:"benefits"`
	Profile  Profile  `json:"profile"`
}

type Candidate struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Level          string   `json:"level"`
	City           string   `json:"city"`
	HardSkills     []string `json:"hard_skills"`
	SoftSkills     []string `json:"soft_skills"`
	ExpectedSalary int      `json:"expected_salary"`
	// MockScore is the pre-baked match shown when no job is selected.
	MockScore int `json:"mock_score"`
}

type Opportunity struct {
	ID         string   `json:"id"`
	CompanyID  string   `json:"company_id"`
	Title      string   `json:"title"`
	Level      string   `json:"level"`
	City       string   `json:"city"`
	WorkMode   WorkMode `json:"work_mode"`
	SalaryMin  int      `json:"salary_min"`
	SalaryMax  int      `json:"salary_max"`
	HardSkills []string `json:"hard_skills"`
	Benefits   []string `json:"benefits"`
	MockMatch  int      `json:"mock_match"`
}

type Question struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Dimension Dimension `json:"dimension"`
	// Reversed questions agree with the opposite pole of the dimension.
	Reversed bool `json:"reversed"`
}

type Mentor struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Avatar    string   `json:"avatar"`
	Tone      string   `json:"tone"`
	Greeting  string   `json:"greeting"`
	Questions []string `json:"questions"`
}

// CompanyByID returns the company with the given id or nil.
func CompanyByID(id string) *Company {
	for i := range Companies {
		if Companies[i].ID == id {
			return &Companies[i]
		}
	}
	return nil
}

// CompanyByName finds a company by case-insensitive name or id.
func CompanyByName(name string) *Company {
	key := utils.NormalizeKey(name)
	for i := range Companies {
		if utils.NormalizeKey(Companies[i].Name) == key || Companies[i].ID == key {
			return &Companies[i]
		}
	}
	return nil
}

// MentorByID returns the mentor persona with the given id, or the first
// persona when the id is unknown or empty.
func MentorByID(id string) Mentor {
	for _, m := range Mentors {
		if strings.EqualFold(m.ID, strings.TrimSpace(id)) {
			return m
		}
	}
	return Mentors[0]
}

// QuestionByID returns the questionnaire item with the given id.
func QuestionByID(id string) (Question, bool) {
	for _, q := range Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// QuestionPages splits the questionnaire into pages of at most size items.
func QuestionPages(size int) [][]Question {
	if size <= 0 {
		size = len(Questions)
	}
	pages := make([][]Question, 0, (len(Questions)+size-1)/size)
	for start := 0; start < len(Questions); start += size {
		end := start + size
		if end > len(Questions) {
			end = len(Questions)
		}
		pages = append(pages, Questions[start:end])
	}
	return pages
}
