package router

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/flows"
	"github.com/ravyz/ravyz/internal/ravyz"
	"github.com/ravyz/ravyz/internal/tui"
	"github.com/ravyz/ravyz/internal/wizard"
)

const (
	companyCreateJob       = "Create a job"
	companyJobs            = "My job postings"
	companyRecommendations = "Candidate recommendations"
	companyProfile         = "Update company profile"
	companySalary          = "Salary benchmark"
	companyLogout          = "Log out"
	companyExit            = "Exit"

	levelUnspecified = "unspecified"
)

func companyDashboardScreen(ctx context.Context, r *Router) (Screen, error) {
	if !r.requireRole(ravyz.RoleCompany) {
		return Welcome, nil
	}

	items := []string{companyCreateJob, companyJobs, companyRecommendations, companyProfile, companySalary, companyLogout, companyExit}
	_, choice, err := r.deps.Prompter.Select("Company dashboard", items)
	if err != nil {
		return CompanyDashboard, err
	}

	switch choice {
	case companyCreateJob:
		if r.session.Job == nil || r.session.CreatedJob != nil {
			r.session.Job = &flows.JobDraft{}
			r.session.CreatedJob = nil
		}
		return JobBuilder, nil
	case companyJobs:
		return CompanyDashboard, r.listJobs(ctx)
	case companyRecommendations:
		return CandidateRecommendations, nil
	case companyProfile:
		return CompanyDashboard, r.updateCompany(ctx)
	case companySalary:
		return SalaryBenchmark, nil
	case companyLogout:
		return Logout, nil
	default:
		return Exit, nil
	}
}

func (r *Router) listJobs(ctx context.Context) error {
	jobs, err := r.deps.API.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	if jobs.Len() == 0 {
		r.println("No job postings yet.")
		return nil
	}

	report := jobs.ReportByCompany()
	for _, company := range slices.Sorted(maps.Keys(report)) {
		r.println(company)
		for _, item := range report[company] {
			r.println(fmt.Sprintf("  %s %s, %s", item["id"], item["title"], item["location"]))
		}
	}
	return nil
}

func (r *Router) updateCompany(ctx context.Context) error {
	p := r.deps.Prompter
	var profile ravyz.CompanyProfile
	var err error

	if profile.Name, err = p.Input("Company name", "", tui.Required); err != nil {
		return err
	}
	if profile.Industry, err = p.Input("Industry", "", nil); err != nil {
		return err
	}
	if profile.City, err = p.Input("City", "", nil); err != nil {
		return err
	}
	if profile.Size, err = p.Input("Size", "", nil); err != nil {
		return err
	}
	if profile.Description, err = p.Input("Description", "", nil); err != nil {
		return err
	}

	if _, err := r.deps.API.UpdateCompany(ctx, profile); err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	r.println("Company profile saved.")
	return nil
}

func jobBuilderScreen(ctx context.Context, r *Router) (Screen, error) {
	s := r.session
	if !r.requireRole(ravyz.RoleCompany) {
		return Welcome, nil
	}
	if s.Job == nil {
		s.Job = &flows.JobDraft{}
	}

	w, err := flows.NewJobBuilder(s.Job,
		wizard.OnComplete(func(j *flows.JobDraft) error {
			job, err := r.deps.API.CreateJob(ctx, j.Payload())
			if err != nil {
				return fmt.Errorf("create job: %w", err)
			}
			s.CreatedJob = job
			r.logger.Info("job created", zap.String("job_id", job.ID), zap.String("job_title", job.Title))
			return nil
		}),
		wizard.WithLogger[*flows.JobDraft](r.logger),
	)
	if err != nil {
		return CompanyDashboard, err
	}

	outcome, err := runWizard(ctx, r, w, fillJob)
	if err != nil {
		return JobBuilder, err
	}
	if outcome == wizard.Exited {
		return CompanyDashboard, nil
	}

	r.println(fmt.Sprintf("Job %s published.", s.CreatedJob.ID))
	return CandidateRecommendations, nil
}

func fillJob(_ context.Context, r *Router, j *flows.JobDraft, step string, _ int) error {
	p := r.deps.Prompter
	var err error

	switch step {
	case "basics":
		if j.Title, err = p.Input("Job title", j.Title, nil); err != nil {
			return err
		}
		if j.Description, err = p.Input("Description", j.Description, nil); err != nil {
			return err
		}
		if j.Location, err = p.Input("Location", j.Location, nil); err != nil {
			return err
		}
		level, err := selectValue(p, "Level", append([]string{levelUnspecified}, catalog.Levels...))
		if err != nil {
			return err
		}
		j.Level = ""
		if level != levelUnspecified {
			j.Level = level
		}

	case "requirements":
		for {
			if len(j.Requirements) > 0 {
				r.println("Requirements:", strings.Join(j.Requirements, ", "))
			}
			req, err := p.Input("Add a requirement (empty to finish)", "", nil)
			if err != nil {
				return err
			}
			if req == "" {
				return nil
			}
			if !j.AddRequirement(req) {
				r.println(fmt.Sprintf("%q is already listed", req))
			}
		}

	case "compensation":
		mode, err := selectValue(p, "Work mode", workModeNames())
		if err != nil {
			return err
		}
		j.WorkMode = catalog.WorkMode(mode)
		raw, err := p.Input("Minimum salary (R$, optional)", itoa(j.SalaryMin), optionalInt)
		if err != nil {
			return err
		}
		j.SalaryMin = atoi(raw)
		if raw, err = p.Input("Maximum salary (R$, optional)", itoa(j.SalaryMax), optionalInt); err != nil {
			return err
		}
		j.SalaryMax = atoi(raw)

	case "review":
		payload := j.Payload()
		r.println(fmt.Sprintf("%s (%s) in %s, %s", payload.Title, levelOrDash(payload.Level), payload.Location, payload.WorkMode))
		r.println(payload.Description)
		r.println("Requirements:", strings.Join(payload.Requirements, ", "))
		if payload.SalaryMax > 0 {
			r.println(fmt.Sprintf("Salary: R$ %d to R$ %d", payload.SalaryMin, payload.SalaryMax))
		}
	}
	return nil
}

func levelOrDash(level string) string {
	if level == "" {
		return "-"
	}
	return level
}

func recommendationsScreen(_ context.Context, r *Router) (Screen, error) {
	if !r.requireRole(ravyz.RoleCompany) {
		return Welcome, nil
	}

	draft := r.session.Job
	if draft == nil {
		draft = &flows.JobDraft{}
		r.println("No job drafted yet; showing our highlighted candidates.")
	} else if draft.Title != "" {
		r.println("Recommended for", draft.Title)
	}

	for _, c := range draft.Recommendations() {
		line := fmt.Sprintf("%s %s, %s %s in %s, %d%% match",
			c.Candidate.ID, c.Candidate.Name, c.Candidate.Level, c.Candidate.Title, c.Candidate.City, c.Match)
		if len(c.Missing) > 0 {
			line += ", missing " + strings.Join(c.Missing, ", ")
		}
		r.println(line)
	}
	return CompanyDashboard, nil
}
