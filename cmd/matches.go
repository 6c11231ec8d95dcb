package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/filtering"
	"github.com/ravyz/ravyz/internal/scoring"
)

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Rank the catalog opportunities for a candidate profile",
	Run: func(cmd *cobra.Command, _ []string) {
		matches(cmd)
	},
}

var synergyCmd = &cobra.Command{
	Use:   "synergy",
	Short: "Score every catalog company against questionnaire answers",
	Run: func(cmd *cobra.Command, _ []string) {
		synergy(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchesCmd, synergyCmd)

	matchesCmd.Flags().StringSlice("skills", nil, "candidate hard skills")
	matchesCmd.Flags().String("city", "", "candidate city")
	matchesCmd.Flags().String("work-mode", "", "preferred work mode")
	matchesCmd.Flags().Int("salary-min", 0, "minimum expected monthly salary")
	matchesCmd.Flags().Int("salary-max", 0, "maximum expected monthly salary")
	matchesCmd.Flags().StringSlice("benefits", nil, "benefits ordered by priority")
	matchesCmd.Flags().String("answers", "", "questionnaire answers file used for company synergy")
	matchesCmd.Flags().StringP("exclude-file", "e", "", "special file with dismissed opportunities. Default is unset.")
	matchesCmd.Flags().Bool("dismiss-all", false, "append every listed opportunity to the exclude file")
	matchesCmd.Flags().Bool("describe-filters", false, "print the status of every filter step")

	synergyCmd.Flags().String("answers", "", "questionnaire answers file (yaml or json, question id to 1..5)")
	synergyCmd.MarkFlagRequired("answers")
}

func matches(cmd *cobra.Command) {
	ctx := context.Background()
	a := bootstrap()
	defer a.shutdown()

	flags := cmd.Flags()
	if path, _ := flags.GetString("exclude-file"); path != "" {
		a.config.Matching.ExcludeFile = path
	}

	var profile scoring.CandidateProfile
	profile.HardSkills, _ = flags.GetStringSlice("skills")
	profile.City, _ = flags.GetString("city")
	mode, _ := flags.GetString("work-mode")
	profile.WorkMode = catalog.WorkMode(mode)
	profile.SalaryMin, _ = flags.GetInt("salary-min")
	profile.SalaryMax, _ = flags.GetInt("salary-max")
	profile.Benefits, _ = flags.GetStringSlice("benefits")

	if path, _ := flags.GetString("answers"); path != "" {
		answers, err := readAnswers(path)
		if err != nil {
			a.logger.Fatal("reading answers", zap.Error(err))
		}
		profile.Profile = scoring.UserProfile(answers, catalog.Questions)
	}

	matcher, _ := a.aiServices(ctx)
	steps, cfg := a.filters(matcher)

	ranked := &filtering.Opportunities{Items: scoring.RankOpportunities(profile, catalog.Opportunities)}
	a.logger.Info("ranking opportunities", zap.Int("count", ranked.Len()))

	deps := filtering.Deps{
		Logger:    a.logger,
		Fs:        a.fs,
		Candidate: profile,
		Matcher:   matcher,
	}
	left, assessments, err := filtering.Run(ctx, cfg, deps, steps, ranked)
	if err != nil {
		a.logger.Fatal("filtering failed", zap.Error(err))
	}

	if describe, _ := flags.GetBool("describe-filters"); describe {
		for _, status := range filtering.Describe(steps) {
			fmt.Printf("%-14s enabled=%t %s %v\n", status.Name, status.Enabled, status.Reason, status.Details)
		}
	}

	if left.Len() == 0 {
		a.logger.Info("exiting", zap.String("reason", "no opportunities left after filters"))
		return
	}

	for _, item := range left.Items {
		company := item.Opportunity.CompanyID
		if item.Company != nil {
			company = item.Company.Name
		}
		fmt.Printf("%s %s at %s, %d%% match", item.Opportunity.ID, item.Opportunity.Title, company, item.Match)
		if item.Synergy > 0 {
			fmt.Printf(", %d%% synergy", item.Synergy)
		}
		fmt.Println()
		if len(item.Reasons) > 0 {
			fmt.Println("  " + strings.Join(item.Reasons, "; "))
		}
		if assessment := assessments[item.Opportunity.ID]; assessment != nil && assessment.Reason != "" {
			fmt.Printf("  AI: %.2f %s\n", assessment.Score, assessment.Reason)
		}
	}

	if dismiss, _ := flags.GetBool("dismiss-all"); dismiss {
		if err := dismissOpportunities(a, left); err != nil {
			a.logger.Fatal("appending to exclude file", zap.Error(err))
		}
	}
}

func dismissOpportunities(a *application, o *filtering.Opportunities) error {
	path := a.config.Matching.ExcludeFile
	if path == "" {
		return fmt.Errorf("exclude file is not set")
	}

	excluded, err := filtering.ReadExcluded(a.fs, path)
	if err != nil {
		return err
	}
	excluded.Append(o.ToExcluded(time.Now()))
	if err := excluded.WriteFile(a.fs, path); err != nil {
		return err
	}

	a.logger.Info("opportunities appended to exclude file",
		zap.String("file", path),
		zap.Int("count", o.Len()),
	)
	return nil
}

func synergy(cmd *cobra.Command) {
	a := bootstrap()
	defer a.shutdown()

	path, _ := cmd.Flags().GetString("answers")
	answers, err := readAnswers(path)
	if err != nil {
		a.logger.Fatal("reading answers", zap.Error(err))
	}

	profile := scoring.UserProfile(answers, catalog.Questions)
	for _, dim := range catalog.Dimensions {
		if v, ok := profile[dim]; ok {
			fmt.Printf("%-14s %.2f\n", dim, v)
		}
	}
	fmt.Println()
	for _, s := range scoring.CompanySynergies(catalog.Companies, profile, nil) {
		fmt.Printf("%-4s %-20s %3d%%\n", s.Company.ID, s.Company.Name, s.Score)
	}
}

// readAnswers loads a question id to agreement map. Any format viper reads
// works; keys must be catalog question ids and values 1..5.
func readAnswers(path string) (map[string]int, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}

	keys := v.AllKeys()
	sort.Strings(keys)

	answers := make(map[string]int, len(keys))
	for _, key := range keys {
		if _, ok := catalog.QuestionByID(key); !ok {
			return nil, fmt.Errorf("unknown question %q", key)
		}
		value := v.GetInt(key)
		if value < 1 || value > 5 {
			return nil, fmt.Errorf("answer to %s must be between 1 and 5, got %v", key, v.Get(key))
		}
		answers[key] = value
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("answers file %q has no answers", path)
	}
	return answers, nil
}
