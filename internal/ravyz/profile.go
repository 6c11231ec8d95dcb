package ravyz

import (
	"context"
	"fmt"
	"net/http"
)

const (
	apiCandidateMePath = "/candidates/me"
	apiCompanyMePath   = "/company/me"
)

// CandidateProfile is the subset of the dream job sent to the backend.
type CandidateProfile struct {
	Name               string             `json:"name,omitempty"`
	Document           string             `json:"document,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	Position           string             `json:"position,omitempty"`
	Level              string             `json:"level,omitempty"`
	Industry           string             `json:"industry,omitempty"`
	City               string             `json:"city,omitempty"`
	WorkMode           string             `json:"work_mode,omitempty"`
	HardSkills         []string           `json:"hard_skills,omitempty"`
	SalaryMin          int                `json:"salary_min,omitempty"`
	SalaryMax          int                `json:"salary_max,omitempty"`
	Benefits           []string           `json:"benefits,omitempty"`
	PreferredCompanies []string           `json:"preferred_companies,omitempty"`
	Culture            map[string]float64 `json:"culture,omitempty"`
}

type CompanyProfile struct {
	Name        string `json:"name,omitempty"`
	Document    string `json:"document,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Industry    string `json:"industry,omitempty"`
	City        string `json:"city,omitempty"`
	Size        string `json:"size,omitempty"`
	Description string `json:"description,omitempty"`
}

func (c *Client) GetCandidate(ctx context.Context) (*CandidateProfile, error) {
	var raw map[string]any
	if err := c.do(ctx, http.MethodGet, apiCandidateMePath, apiCandidateMePath, nil, &raw); err != nil {
		return nil, err
	}

	profile := &CandidateProfile{}
	if err := decodeWeak(unwrapObject(raw, "candidate"), profile); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}
	return profile, nil
}

func (c *Client) UpdateCandidate(ctx context.Context, p CandidateProfile) (*CandidateProfile, error) {
	var raw map[string]any
	if err := c.do(ctx, http.MethodPut, apiCandidateMePath, apiCandidateMePath, p, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return &p, nil
	}

	updated := &CandidateProfile{}
	if err := decodeWeak(unwrapObject(raw, "candidate"), updated); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}
	return updated, nil
}

func (c *Client) UpdateCompany(ctx context.Context, p CompanyProfile) (*CompanyProfile, error) {
	var raw map[string]any
	if err := c.do(ctx, http.MethodPut, apiCompanyMePath, apiCompanyMePath, p, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return &p, nil
	}

	updated := &CompanyProfile{}
	if err := decodeWeak(unwrapObject(raw, "company"), updated); err != nil {
		return nil, fmt.Errorf("decode company: %w", err)
	}
	return updated, nil
}

func unwrapObject(raw map[string]any, key string) map[string]any {
	if nested, ok := raw[key].(map[string]any); ok {
		return nested
	}
	return raw
}
