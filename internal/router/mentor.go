package router

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/ai"
	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/mentor"
)

const (
	mentorModeVoice = "voice"
	mentorModeText  = "text"
)

func mentorScreen(ctx context.Context, r *Router) (Screen, error) {
	voice := r.deps.Webhook != nil && r.deps.Webhook.Enabled()
	if !voice && r.deps.Assistant == nil {
		r.println("The mentor is not available: configure mentor.webhook-url or the Gemini assistant.")
		return r.home(), nil
	}

	items := make([]string, 0, len(catalog.Mentors)+1)
	for _, m := range catalog.Mentors {
		items = append(items, fmt.Sprintf("%s %s, %s", m.ID, m.Name, m.Tone))
	}
	items = append(items, actionBack)

	idx, choice, err := r.deps.Prompter.Select("Choose your mentor", items)
	if err != nil {
		return Mentor, err
	}
	if choice == actionBack {
		return r.home(), nil
	}
	persona := catalog.Mentors[idx]

	r.println(fmt.Sprintf("%s %s: %s", persona.Avatar, persona.Name, persona.Greeting))

	for i := 0; i < len(persona.Questions); {
		r.println(fmt.Sprintf("%s: %s", persona.Name, persona.Questions[i]))

		var (
			reply string
			done  bool
		)
		if voice {
			reply, done, err = r.voiceTurn(ctx, persona, i)
		} else {
			reply, done, err = r.textTurn(ctx, persona, i)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || isInterrupt(err) {
				return Mentor, err
			}
			r.println("Error:", describeError(err))
			continue
		}
		if done {
			break
		}
		if reply != "" {
			r.println(fmt.Sprintf("%s: %s", persona.Name, reply))
		}
		i++
	}

	r.println(fmt.Sprintf("%s: Thanks for the talk!", persona.Name))
	return r.home(), nil
}

// voiceTurn sends a recorded answer to the webhook and plays the reply.
func (r *Router) voiceTurn(ctx context.Context, persona catalog.Mentor, question int) (string, bool, error) {
	path, err := r.deps.Prompter.Input("Recorded answer (.webm path, empty to finish)", "", nil)
	if err != nil || path == "" {
		return "", true, err
	}

	f, err := r.deps.Fs.Open(path)
	if err != nil {
		return "", false, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	reply, err := r.deps.Webhook.Send(ctx, mentor.Turn{
		Audio:         f,
		AudioName:     path,
		CandidateID:   r.session.CandidateID(),
		QuestionIndex: question,
		Mentor:        persona,
	})
	if err != nil {
		r.deps.Metrics.MentorTurn(mentorModeVoice, "error")
		return "", false, err
	}
	r.deps.Metrics.MentorTurn(mentorModeVoice, "ok")

	if r.deps.Player != nil && len(reply.Audio) > 0 {
		saved, err := r.deps.Player.Play(ctx, reply)
		if err != nil {
			r.logger.Warn("playing mentor reply failed", zap.Error(err))
		} else {
			r.logger.Debug("mentor reply saved", zap.String("path", saved))
		}
	}
	return reply.Text, false, nil
}

// textTurn asks the text assistant for the persona's reply.
func (r *Router) textTurn(ctx context.Context, persona catalog.Mentor, question int) (string, bool, error) {
	answer, err := r.deps.Prompter.Input("Your answer (empty to finish)", "", nil)
	if err != nil || answer == "" {
		return "", true, err
	}

	reply, err := r.deps.Assistant.Reply(ctx, ai.MentorRequest{
		Mentor:        persona,
		CandidateID:   r.session.CandidateID(),
		QuestionIndex: question,
		Answer:        answer,
	})
	if err != nil {
		r.deps.Metrics.MentorTurn(mentorModeText, "error")
		return "", false, err
	}
	r.deps.Metrics.MentorTurn(mentorModeText, "ok")
	return reply, false, nil
}
