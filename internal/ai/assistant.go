package ai

import (
	"context"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/scoring"
)

type FitAssessment struct {
	Fit     bool
	Score   float64
	Reason  string
	Message string
	Raw     string
}

// Matcher judges whether an opportunity fits the candidate.
type Matcher interface {
	Evaluate(ctx context.Context, candidate scoring.CandidateProfile, opportunity catalog.Opportunity) (*FitAssessment, error)
}

// MentorRequest is one turn of the mentor conversation in text form.
type MentorRequest struct {
	Mentor        catalog.Mentor
	CandidateID   string
	QuestionIndex int
	Answer        string
}

// Mentor produces the persona's reply to a candidate answer.
type Mentor interface {
	Reply(ctx context.Context, req MentorRequest) (string, error)
}
