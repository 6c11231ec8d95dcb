package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/ai"
	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/mentor"
)

var mentorCmd = &cobra.Command{
	Use:   "mentor",
	Short: "Talk to a career mentor persona",
}

var mentorSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a recorded answer to the voice mentor and play the reply",
	Run: func(cmd *cobra.Command, _ []string) {
		mentorSend(cmd)
	},
}

var mentorAskCmd = &cobra.Command{
	Use:   "ask <answer>",
	Short: "Answer a mentor question in text and print the reply",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mentorAsk(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(mentorCmd)
	mentorCmd.AddCommand(mentorSendCmd, mentorAskCmd)

	mentorCmd.PersistentFlags().String("mentor", catalog.Mentors[0].ID, "mentor persona id")
	mentorCmd.PersistentFlags().IntP("question", "q", 0, "index of the question being answered")
	mentorCmd.PersistentFlags().String("candidate", "", "candidate id sent along with the answer")

	mentorSendCmd.Flags().String("audio", "", "recorded answer (.webm)")
	mentorSendCmd.MarkFlagRequired("audio")
}

func mentorFlags(cmd *cobra.Command) (catalog.Mentor, int, string, error) {
	id, _ := cmd.Flags().GetString("mentor")
	question, _ := cmd.Flags().GetInt("question")
	candidate, _ := cmd.Flags().GetString("candidate")

	persona := catalog.MentorByID(id)
	if !strings.EqualFold(persona.ID, strings.TrimSpace(id)) {
		return persona, 0, "", fmt.Errorf("unknown mentor %q", id)
	}
	if question < 0 || question >= len(persona.Questions) {
		return persona, 0, "", fmt.Errorf("%s has %d questions, got index %d", persona.Name, len(persona.Questions), question)
	}
	return persona, question, candidate, nil
}

func mentorSend(cmd *cobra.Command) {
	ctx := context.Background()
	a := bootstrap()
	defer a.shutdown()

	persona, question, candidate, err := mentorFlags(cmd)
	if err != nil {
		a.logger.Fatal("choosing the mentor", zap.Error(err))
	}

	webhook, player := a.mentorClients()
	if webhook == nil {
		a.logger.Fatal("sending mentor turn",
			zap.Error(mentor.ErrNoWebhook),
			zap.String("hint", "set mentor.webhook-url or RAVYZ_MENTOR_WEBHOOK_URL"),
		)
	}

	path, _ := cmd.Flags().GetString("audio")
	audio, err := os.Open(path)
	if err != nil {
		a.logger.Fatal("opening recording", zap.Error(err))
	}
	defer audio.Close()

	reply, err := webhook.Send(ctx, mentor.Turn{
		Audio:         audio,
		AudioName:     path,
		CandidateID:   orDefault(candidate, a.sessionID),
		QuestionIndex: question,
		Mentor:        persona,
	})
	if err != nil {
		a.metrics.MentorTurn("voice", "error")
		a.logger.Fatal("sending mentor turn", zap.Error(err))
	}
	a.metrics.MentorTurn("voice", "ok")

	fmt.Printf("%s: %s\n", persona.Name, persona.Questions[question])
	if reply.Text != "" {
		fmt.Printf("%s: %s\n", persona.Name, reply.Text)
	}

	saved, err := player.Play(ctx, reply)
	if err != nil {
		a.logger.Warn("playing mentor reply failed", zap.Error(err))
		return
	}
	a.logger.Info("mentor reply saved", zap.String("path", saved))
	if err := player.Wait(); err != nil {
		a.logger.Warn("mentor reply playback", zap.Error(err))
	}
}

func mentorAsk(cmd *cobra.Command, answer string) {
	ctx := context.Background()
	a := bootstrap()
	defer a.shutdown()

	persona, question, candidate, err := mentorFlags(cmd)
	if err != nil {
		a.logger.Fatal("choosing the mentor", zap.Error(err))
	}

	_, assistant := a.aiServices(ctx)
	if assistant == nil {
		a.logger.Fatal("the text mentor is not available",
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
		)
	}

	reply, err := assistant.Reply(ctx, ai.MentorRequest{
		Mentor:        persona,
		CandidateID:   orDefault(candidate, a.sessionID),
		QuestionIndex: question,
		Answer:        answer,
	})
	if err != nil {
		a.metrics.MentorTurn("text", "error")
		a.logger.Fatal("asking the mentor", zap.Error(err))
	}
	a.metrics.MentorTurn("text", "ok")

	fmt.Printf("%s: %s\n", persona.Name, persona.Questions[question])
	fmt.Printf("%s: %s\n", persona.Name, reply)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
