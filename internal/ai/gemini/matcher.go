package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/ai"
	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/scoring"
	"github.com/ravyz/ravyz/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed match_prompt.md
var matchPromptTemplate string

const (
	defaultMaxLogLength     = 200
	maxUserInstructionRunes = 500
	defaultTone             = "Friendly"
	placeholderNone         = "none"
)

// PromptOverrides customises the advisory parts of the match prompt.
type PromptOverrides struct {
	ExtraCriteria    string
	DealBreakers     string
	Tone             string
	UserInstructions string
}

type Matcher struct {
	generator contentGenerator
	minScore  float64
	logger    *zap.Logger
	maxLogLen int
	overrides PromptOverrides
}

func NewMatcher(generator contentGenerator, minScore float64, maxLogLength int, logger *zap.Logger) *Matcher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Matcher{
		generator: generator,
		minScore:  minScore,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (m *Matcher) SetPromptOverrides(o PromptOverrides) {
	m.overrides = o
}

func (m *Matcher) Evaluate(ctx context.Context, candidate scoring.CandidateProfile, opportunity catalog.Opportunity) (*ai.FitAssessment, error) {
	if strings.TrimSpace(opportunity.ID) == "" {
		return nil, fmt.Errorf("opportunity id is required")
	}

	candidateJSON, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal candidate payload: %w", err)
	}

	opportunityPayload := map[string]any{"opportunity": opportunity}
	if company := catalog.CompanyByID(opportunity.CompanyID); company != nil {
		opportunityPayload["company"] = company
	}
	opportunityJSON, err := json.MarshalIndent(opportunityPayload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal opportunity payload: %w", err)
	}

	prompt := m.buildPrompt(string(candidateJSON), string(opportunityJSON))

	m.logger.Debug("gemini generate content request",
		zap.String("opportunity_id", opportunity.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, m.maxLogLen)),
	)

	raw, err := m.generator.GenerateContent(ctx, "", prompt)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("gemini generate content response",
		zap.String("opportunity_id", opportunity.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, m.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	if m.minScore > 0 && assessment.Score < m.minScore {
		m.logger.Debug("set fit to false by score threshold",
			zap.String("opportunity_id", opportunity.ID),
			zap.Float64("score", assessment.Score),
			zap.Float64("threshold", m.minScore),
		)
		assessment.Fit = false
	}

	assessment.Raw = raw
	return assessment, nil
}

func (m *Matcher) buildPrompt(candidateJSON, opportunityJSON string) string {
	template := matchPromptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate:\n{{CANDIDATE_JSON}}\n\nOpportunity:\n{{OPPORTUNITY_JSON}}\n\nJSON Response:"
	}

	tone := sanitizeLine(m.overrides.Tone)
	if tone == "" {
		tone = defaultTone
	}

	replacer := strings.NewReplacer(
		"{{EXTRA_CRITERIA}}", orNone(sanitizeLine(m.overrides.ExtraCriteria)),
		"{{DEAL_BREAKERS}}", orNone(sanitizeLine(m.overrides.DealBreakers)),
		"{{TONE}}", tone,
		"{{USER_INSTRUCTIONS}}", sanitizeBlock(m.overrides.UserInstructions),
		"{{CANDIDATE_JSON}}", candidateJSON,
		"{{OPPORTUNITY_JSON}}", opportunityJSON,
	)
	return replacer.Replace(template)
}

func orNone(s string) string {
	if s == "" {
		return placeholderNone
	}
	return s
}

// sanitizeLine collapses whitespace and replaces square brackets so user text
// cannot open a new prompt section.
func sanitizeLine(s string) string {
	s = strings.NewReplacer("[", "(", "]", ")").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// sanitizeBlock renders user instructions as an indented bullet list, capped
// at maxUserInstructionRunes.
func sanitizeBlock(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "  - " + placeholderNone
	}
	if runes := []rune(s); len(runes) > maxUserInstructionRunes {
		s = string(runes[:maxUserInstructionRunes])
	}

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = sanitizeLine(line); line != "" {
			lines = append(lines, "  - "+line)
		}
	}
	if len(lines) == 0 {
		return "  - " + placeholderNone
	}
	return strings.Join(lines, "\n")
}

func parseResponse(raw string) (*ai.FitAssessment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		score = 0
	}

	return &ai.FitAssessment{
		Fit:     coerceBool(data["fit"]),
		Score:   score,
		Reason:  coerceString(data["reason"]),
		Message: coerceString(data["message"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
