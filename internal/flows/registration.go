// Package flows defines the drafts and step tables of every chained form:
// registration, dream job, matching and the company job builder.
package flows

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode"

	"github.com/ravyz/ravyz/internal/ravyz"
	"github.com/ravyz/ravyz/internal/wizard"
)

const (
	WizardRegistration = "registration"
	minPasswordLength  = 8
)

// ExternalProfile is a profile imported from another network by URL.
type ExternalProfile struct {
	Source string `json:"source"`
	URL    string `json:"url"`
	Handle string `json:"handle"`
}

type Registration struct {
	Role            ravyz.Role
	Name            string
	Document        string
	Phone           string
	Email           string
	Password        string
	PasswordConfirm string
	AcceptedTerms   bool
	Imported        *ExternalProfile
}

// Request is the payload handed to the register endpoint.
func (r *Registration) Request() ravyz.RegisterRequest {
	return ravyz.RegisterRequest{
		Email:    strings.TrimSpace(r.Email),
		Password: r.Password,
		Role:     r.Role,
	}
}

func RegistrationSteps() []wizard.Step[*Registration] {
	return []wizard.Step[*Registration]{
		{Name: "personal", Check: checkPersonal},
		{Name: "account", Check: checkAccount},
		{Name: "import"},
	}
}

func NewRegistration(r *Registration, opts ...wizard.Option[*Registration]) (*wizard.Wizard[*Registration], error) {
	return wizard.New(WizardRegistration, r, RegistrationSteps(), opts...)
}

func checkPersonal(r *Registration, _ int) error {
	var problems []string
	if len([]rune(strings.TrimSpace(r.Name))) < 2 {
		problems = append(problems, "name")
	}
	if n := countDigits(r.Document); n != 11 && n != 14 {
		problems = append(problems, "document (11 or 14 digits)")
	}
	if n := countDigits(r.Phone); n < 10 || n > 13 {
		problems = append(problems, "phone")
	}
	return missing(problems)
}

func checkAccount(r *Registration, _ int) error {
	var problems []string
	if !ValidEmail(r.Email) {
		problems = append(problems, "valid email")
	}
	if len([]rune(r.Password)) < minPasswordLength {
		problems = append(problems, fmt.Sprintf("password of at least %d characters", minPasswordLength))
	} else if r.Password != r.PasswordConfirm {
		problems = append(problems, "matching password confirmation")
	}
	if !r.AcceptedTerms {
		problems = append(problems, "terms acceptance")
	}
	if !r.Role.Valid() {
		problems = append(problems, "profile role")
	}
	return missing(problems)
}

// ValidEmail accepts a bare address with a dotted domain.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// ImportProfile recognises a LinkedIn or GitHub profile URL.
func ImportProfile(raw string) (*ExternalProfile, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid profile url %q", raw)
	}
	if u.Scheme != "https" {
		return nil, errors.New("profile url must use https")
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })

	switch {
	case host == "linkedin.com" && len(segments) >= 2 && segments[0] == "in":
		return &ExternalProfile{Source: "linkedin", URL: u.String(), Handle: segments[1]}, nil
	case host == "github.com" && len(segments) >= 1:
		return &ExternalProfile{Source: "github", URL: u.String(), Handle: segments[0]}, nil
	default:
		return nil, fmt.Errorf("unsupported profile url %q: use a linkedin.com/in or github.com profile", raw)
	}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func missing(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("missing %s", strings.Join(problems, ", "))
}
