package cmd

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/flows"
	"github.com/ravyz/ravyz/internal/ravyz"
	"github.com/ravyz/ravyz/internal/scoring"
	"github.com/ravyz/ravyz/internal/wizard"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List, create and apply to job postings",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open job postings grouped by company",
	Run: func(cmd *cobra.Command, _ []string) {
		listJobs(cmd)
	},
}

var jobsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a job posting as a company",
	Run: func(cmd *cobra.Command, _ []string) {
		createJob(cmd)
	},
}

var jobsApplyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply to a job posting as a candidate",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		a := bootstrap()
		defer a.shutdown()

		if err := a.api.Apply(context.Background(), args[0]); err != nil {
			a.logger.Fatal("applying to job", zap.Error(err), zap.String("job_id", args[0]))
		}
		a.logger.Info("successfully applied to job", zap.String("job_id", args[0]))
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd, jobsCreateCmd, jobsApplyCmd)

	jobsListCmd.Flags().Bool("dump", false, "dump the jobs to a temporary json file")
	jobsListCmd.Flags().StringSlice("skills", nil, "show the skills match against these skills")

	jobsCreateCmd.Flags().String("title", "", "job title")
	jobsCreateCmd.Flags().String("description", "", "job description")
	jobsCreateCmd.Flags().String("location", "", "job location")
	jobsCreateCmd.Flags().String("level", "", "seniority: "+strings.Join(catalog.Levels, ", "))
	jobsCreateCmd.Flags().StringArrayP("requirement", "r", nil, "a requirement, may be repeated")
	jobsCreateCmd.Flags().String("work-mode", string(catalog.Remote), "work mode: remote, hybrid or onsite")
	jobsCreateCmd.Flags().Int("salary-min", 0, "minimum monthly salary in BRL")
	jobsCreateCmd.Flags().Int("salary-max", 0, "maximum monthly salary in BRL")
}

func listJobs(cmd *cobra.Command) {
	a := bootstrap()
	defer a.shutdown()

	jobs, err := a.api.ListJobs(context.Background())
	if err != nil {
		a.logger.Fatal("listing jobs", zap.Error(err))
	}

	a.logger.Info("getting jobs", zap.Int("count", jobs.Len()))
	if jobs.Len() == 0 {
		return
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		path, err := jobs.DumpToTmpFile()
		if err != nil {
			a.logger.Fatal("dumping jobs", zap.Error(err))
		}
		a.logger.Info("jobs dumped", zap.String("file", path))
	}

	skills, _ := cmd.Flags().GetStringSlice("skills")

	report := jobs.ReportByCompany()
	for _, company := range slices.Sorted(maps.Keys(report)) {
		fmt.Println(company)
		for _, item := range report[company] {
			line := fmt.Sprintf("  %s %s, %s", item["id"], item["title"], item["location"])
			if len(skills) > 0 {
				if job := jobs.FindByID(item["id"]); job != nil {
					line += fmt.Sprintf(" (%d%% skills match)", scoring.SkillsMatchPercentage(skills, job.Requirements))
				}
			}
			fmt.Println(line)
		}
	}
}

func createJob(cmd *cobra.Command) {
	ctx := context.Background()
	a := bootstrap()
	defer a.shutdown()

	flags := cmd.Flags()
	draft := &flows.JobDraft{}
	draft.Title, _ = flags.GetString("title")
	draft.Description, _ = flags.GetString("description")
	draft.Location, _ = flags.GetString("location")
	draft.Level, _ = flags.GetString("level")
	mode, _ := flags.GetString("work-mode")
	draft.WorkMode = catalog.WorkMode(mode)
	draft.SalaryMin, _ = flags.GetInt("salary-min")
	draft.SalaryMax, _ = flags.GetInt("salary-max")
	requirements, _ := flags.GetStringArray("requirement")
	for _, req := range requirements {
		draft.AddRequirement(req)
	}

	var created *ravyz.Job
	w, err := flows.NewJobBuilder(draft,
		wizard.OnComplete(func(j *flows.JobDraft) error {
			job, err := a.api.CreateJob(ctx, j.Payload())
			if err != nil {
				return err
			}
			created = job
			return nil
		}),
		wizard.WithLogger[*flows.JobDraft](a.logger),
	)
	if err != nil {
		a.logger.Fatal("preparing the job builder", zap.Error(err))
	}

	// Walk every page; the first incomplete one stops the command.
	for {
		outcome, err := w.Next()
		if err != nil {
			a.logger.Fatal("creating job", zap.Error(err), zap.String("step", w.Current().Name))
		}
		if outcome == wizard.Completed {
			break
		}
	}
	a.metrics.WizardFinished(flows.WizardJobBuilder, "completed")

	a.logger.Info("job created", zap.String("job_id", created.ID), zap.String("job_title", created.Title))
	for _, c := range draft.Recommendations() {
		fmt.Printf("%s %s, %s %s, %d%% match\n", c.Candidate.ID, c.Candidate.Name, c.Candidate.Level, c.Candidate.Title, c.Match)
	}
}
