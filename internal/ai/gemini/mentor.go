package gemini

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/ai"
	"github.com/ravyz/ravyz/internal/utils"
)

//go:embed mentor_prompt.md
var mentorPromptTemplate string

// Assistant answers in a mentor persona's voice. It is the text counterpart
// of the audio webhook.
type Assistant struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAssistant(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Assistant {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{generator: generator, logger: logger, maxLogLen: maxLogLength}
}

func (a *Assistant) Reply(ctx context.Context, req ai.MentorRequest) (string, error) {
	answer := strings.TrimSpace(req.Answer)
	if answer == "" {
		return "", errors.New("answer must not be empty")
	}

	system := mentorSystemPrompt(req)

	a.logger.Debug("mentor reply request",
		zap.String("mentor", req.Mentor.ID),
		zap.String("candidate_id", req.CandidateID),
		zap.Int("question_index", req.QuestionIndex),
		zap.Int("answer_length", utf8.RuneCountInString(answer)),
	)

	reply, err := a.generator.GenerateContent(ctx, system, answer)
	if err != nil {
		return "", err
	}

	a.logger.Debug("mentor reply response",
		zap.String("mentor", req.Mentor.ID),
		zap.String("response_preview", utils.TruncateForLog(reply, a.maxLogLen)),
	)

	return reply, nil
}

func mentorSystemPrompt(req ai.MentorRequest) string {
	question := ""
	if req.QuestionIndex >= 0 && req.QuestionIndex < len(req.Mentor.Questions) {
		question = req.Mentor.Questions[req.QuestionIndex]
	}
	if question == "" {
		question = req.Mentor.Greeting
	}

	name := sanitizeLine(req.Mentor.Name)
	if name == "" {
		name = "a mentor"
	}
	tone := sanitizeLine(req.Mentor.Tone)
	if tone == "" {
		tone = defaultTone
	}

	return strings.NewReplacer(
		"{{MENTOR_NAME}}", name,
		"{{MENTOR_TONE}}", tone,
		"{{QUESTION}}", sanitizeLine(question),
	).Replace(mentorPromptTemplate)
}
