package router

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/filtering"
	"github.com/ravyz/ravyz/internal/flows"
	"github.com/ravyz/ravyz/internal/ravyz"
	"github.com/ravyz/ravyz/internal/scoring"
	"github.com/ravyz/ravyz/internal/tui"
	"github.com/ravyz/ravyz/internal/wizard"
)

// scaleLabels are the answers of every 1..5 question; the label starts with its value.
var scaleLabels = []string{
	"1 strongly disagree",
	"2 disagree",
	"3 neutral",
	"4 agree",
	"5 strongly agree",
}

const (
	candidateMatches  = "View my matches"
	candidateJobs     = "Browse open jobs"
	candidateDreamJob = "Edit my dream job"
	candidateMatching = "Compare with my current job"
	candidateSalary   = "Salary benchmark"
	candidateMentor   = "Talk to a mentor"
	candidateLogout   = "Log out"
	candidateExit     = "Exit"

	dismissAll = "Dismiss all listed"
)

func dreamJobScreen(ctx context.Context, r *Router) (Screen, error) {
	s := r.session
	if !r.requireRole(ravyz.RoleCandidate) {
		return Welcome, nil
	}
	if s.DreamJob == nil {
		s.DreamJob = flows.NewDreamJob()
	}

	w, err := flows.NewDreamJobWizard(s.DreamJob,
		wizard.OnComplete(func(d *flows.DreamJob) error { return r.saveDreamJob(ctx, d) }),
		wizard.WithLogger[*flows.DreamJob](r.logger),
	)
	if err != nil {
		return CandidateDashboard, err
	}

	outcome, err := runWizard(ctx, r, w, fillDreamJob)
	if err != nil {
		return DreamJob, err
	}
	if outcome == wizard.Exited {
		return CandidateDashboard, nil
	}

	r.println(fmt.Sprintf("We found %d matches for your dream job.", len(s.Matches)))
	return Matching, nil
}

func fillDreamJob(_ context.Context, r *Router, d *flows.DreamJob, step string, page int) error {
	p := r.deps.Prompter
	var err error

	switch step {
	case "role":
		if d.Position, err = p.Input("Position", d.Position, nil); err != nil {
			return err
		}
		if d.Level, err = selectValue(p, "Level", catalog.Levels); err != nil {
			return err
		}
		if d.Industry, err = p.Input("Industry (optional)", d.Industry, nil); err != nil {
			return err
		}
		if d.City, err = p.Input("City", d.City, nil); err != nil {
			return err
		}
		mode, err := selectValue(p, "Work mode", workModeNames())
		if err != nil {
			return err
		}
		d.WorkMode = catalog.WorkMode(mode)
		skills, err := p.Input("Hard skills, comma separated", strings.Join(d.HardSkills, ", "), nil)
		if err != nil {
			return err
		}
		d.HardSkills = splitList(skills)

	case "questionnaire":
		pages := catalog.QuestionPages(flows.QuestionsPerPage)
		if page < 0 || page >= len(pages) {
			return fmt.Errorf("unknown questionnaire page %d", page)
		}
		for _, q := range pages[page] {
			idx, _, err := p.Select(q.Text, scaleLabels)
			if err != nil {
				return err
			}
			d.Answers[q.ID] = idx + 1
		}

	case "companies":
		return pickCompanies(r, d)

	case "salary":
		if band, err := scoring.Benchmark(scoring.BenchmarkQuery{Position: d.Position, Level: d.Level, Industry: d.Industry, City: d.City}); err == nil {
			r.println(fmt.Sprintf("Market for %s %s: R$ %d to R$ %d (median R$ %d)",
				d.Level, d.Position, band.Band.P25, band.Band.P75, band.Band.P50))
		}
		raw, err := p.Input("Minimum monthly salary (R$)", itoa(d.SalaryMin), tui.Int(1, 1_000_000))
		if err != nil {
			return err
		}
		d.SalaryMin = atoi(raw)
		if raw, err = p.Input("Maximum monthly salary (R$)", itoa(d.SalaryMax), tui.Int(1, 1_000_000)); err != nil {
			return err
		}
		d.SalaryMax = atoi(raw)

	case "benefits":
		return rankBenefits(r, d)

	case "review":
		printDreamJob(r, d)
	}
	return nil
}

func pickCompanies(r *Router, d *flows.DreamJob) error {
	synergies := d.Synergies()
	for {
		items := make([]string, 0, len(synergies)+1)
		for _, s := range synergies {
			mark := ""
			if d.Companies[s.Company.ID] {
				mark = " [selected]"
			}
			items = append(items, fmt.Sprintf("%s %s, %s, synergy %d%%%s", s.Company.ID, s.Company.Name, s.Company.Industry, s.Score, mark))
		}
		items = append(items, actionDone)

		_, choice, err := r.deps.Prompter.Select("Companies you admire", items)
		if err != nil {
			return err
		}
		if choice == actionDone {
			return nil
		}
		if err := d.ToggleCompany(firstField(choice)); err != nil {
			r.println(err.Error())
		}
	}
}

func rankBenefits(r *Router, d *flows.DreamJob) error {
	p := r.deps.Prompter
	for {
		items := make([]string, 0, len(d.Benefits)+1)
		for i, b := range d.Benefits {
			items = append(items, fmt.Sprintf("%d. %s", i+1, b))
		}
		items = append(items, actionDone)

		from, choice, err := p.Select("Order benefits by priority: pick one to move", items)
		if err != nil {
			return err
		}
		if choice == actionDone {
			return nil
		}

		raw, err := p.Input("New position", "", tui.Int(1, len(d.Benefits)))
		if err != nil {
			return err
		}
		if err := d.MoveBenefit(from, atoi(raw)-1); err != nil {
			r.println(err.Error())
		}
	}
}

func printDreamJob(r *Router, d *flows.DreamJob) {
	r.println(fmt.Sprintf("%s %s in %s (%s)", d.Level, d.Position, d.City, d.WorkMode))
	r.println("Skills:", strings.Join(d.HardSkills, ", "))
	r.println(fmt.Sprintf("Salary: R$ %d to R$ %d", d.SalaryMin, d.SalaryMax))
	r.println("Companies:", strings.Join(d.SelectedCompanies(), ", "))
	r.println("Benefits:", strings.Join(d.Benefits, " > "))
	for _, dim := range catalog.Dimensions {
		if v, ok := d.Profile()[dim]; ok {
			r.println(fmt.Sprintf("  %-13s %.1f", dim, v))
		}
	}
}

// saveDreamJob stores the profile on the backend and ranks the catalog for it.
func (r *Router) saveDreamJob(ctx context.Context, d *flows.DreamJob) error {
	update := d.ProfileUpdate()
	if err := flows.Validate(flows.SchemaCandidateProfile, update); err != nil {
		return err
	}
	if _, err := r.deps.API.UpdateCandidate(ctx, update); err != nil {
		return fmt.Errorf("save dream job: %w", err)
	}

	candidate := d.CandidateProfile()
	return r.filterMatches(ctx, candidate, scoring.RankOpportunities(candidate, catalog.Opportunities))
}

// filterMatches runs the filter pipeline and keeps the result on the session.
func (r *Router) filterMatches(ctx context.Context, candidate scoring.CandidateProfile, ranked []scoring.RankedOpportunity) error {
	deps := filtering.Deps{
		Logger:    r.logger,
		Fs:        r.deps.Fs,
		Candidate: candidate,
		Matcher:   r.deps.Matcher,
	}

	left, assessments, err := filtering.Run(ctx, r.deps.FilterConfig, deps, r.deps.Filters, &filtering.Opportunities{Items: ranked})
	if err != nil {
		return fmt.Errorf("filter matches: %w", err)
	}

	r.session.Matches = left.Items
	r.session.Assessments = assessments
	return nil
}

func matchingScreen(ctx context.Context, r *Router) (Screen, error) {
	s := r.session
	if !r.requireRole(ravyz.RoleCandidate) {
		return Welcome, nil
	}
	if s.Matching == nil {
		s.Matching = flows.NewMatching()
	}

	w, err := flows.NewMatchingWizard(s.Matching,
		wizard.OnComplete(func(m *flows.Matching) error {
			candidate := r.candidateProfile()
			return r.filterMatches(ctx, candidate, m.Results(candidate))
		}),
		wizard.WithLogger[*flows.Matching](r.logger),
	)
	if err != nil {
		return CandidateDashboard, err
	}

	outcome, err := runWizard(ctx, r, w, fillMatching)
	if err != nil {
		return Matching, err
	}
	if outcome == wizard.Completed {
		if low := s.Matching.LowestRated(); len(low) > 0 {
			r.println("Least satisfied with:", strings.Join(low, ", "))
		}
		printMatches(r, s.Matches, 3)
	}
	return CandidateDashboard, nil
}

func fillMatching(_ context.Context, r *Router, m *flows.Matching, step string, _ int) error {
	p := r.deps.Prompter
	var err error

	switch step {
	case "current-job":
		if m.Current.Position, err = p.Input("Current position", m.Current.Position, nil); err != nil {
			return err
		}
		if m.Current.Company, err = p.Input("Current company", m.Current.Company, nil); err != nil {
			return err
		}
		raw, err := p.Input("Current monthly salary (R$, optional)", itoa(m.Current.Salary), optionalInt)
		if err != nil {
			return err
		}
		m.Current.Salary = atoi(raw)
		if raw, err = p.Input("Months in the role", itoa(m.Current.Months), optionalInt); err != nil {
			return err
		}
		m.Current.Months = atoi(raw)

	case "satisfaction":
		for _, aspect := range catalog.SatisfactionAspects {
			idx, _, err := p.Select("How satisfied are you with "+aspect+"?", scaleLabels)
			if err != nil {
				return err
			}
			m.Satisfaction[aspect] = idx + 1
		}

	case "motivations":
		for {
			items := make([]string, 0, len(catalog.Motivations)+1)
			for _, tag := range catalog.Motivations {
				if slices.Contains(m.Motivations, tag) {
					tag += " [selected]"
				}
				items = append(items, tag)
			}
			items = append(items, actionDone)

			idx, choice, err := p.Select("What would make you move? (up to 3)", items)
			if err != nil {
				return err
			}
			if choice == actionDone {
				return nil
			}
			if err := m.ToggleMotivation(catalog.Motivations[idx]); err != nil {
				r.println(err.Error())
			}
		}
	}
	return nil
}

// candidateProfile is the ranking view of the dream job, empty without one.
func (r *Router) candidateProfile() scoring.CandidateProfile {
	if r.session.DreamJob == nil {
		return scoring.CandidateProfile{}
	}
	return r.session.DreamJob.CandidateProfile()
}

func candidateDashboardScreen(ctx context.Context, r *Router) (Screen, error) {
	if !r.requireRole(ravyz.RoleCandidate) {
		return Welcome, nil
	}

	items := []string{
		fmt.Sprintf("%s (%d)", candidateMatches, len(r.session.Matches)),
		candidateJobs, candidateDreamJob, candidateMatching, candidateSalary, candidateMentor, candidateLogout, candidateExit,
	}
	_, choice, err := r.deps.Prompter.Select("Candidate dashboard", items)
	if err != nil {
		return CandidateDashboard, err
	}

	switch {
	case strings.HasPrefix(choice, candidateMatches):
		return CandidateDashboard, r.reviewMatches(ctx)
	case choice == candidateJobs:
		return CandidateDashboard, r.browseJobs(ctx)
	case choice == candidateDreamJob:
		return DreamJob, nil
	case choice == candidateMatching:
		return Matching, nil
	case choice == candidateSalary:
		return SalaryBenchmark, nil
	case choice == candidateMentor:
		return Mentor, nil
	case choice == candidateLogout:
		return Logout, nil
	default:
		return Exit, nil
	}
}

func printMatches(r *Router, matches []scoring.RankedOpportunity, limit int) {
	for i, m := range matches {
		if limit > 0 && i == limit {
			break
		}
		r.println(matchLabel(m))
	}
}

func matchLabel(m scoring.RankedOpportunity) string {
	company := m.Opportunity.CompanyID
	if m.Company != nil {
		company = m.Company.Name
	}
	return fmt.Sprintf("%s %s at %s, %d%% match", m.Opportunity.ID, m.Opportunity.Title, company, m.Match)
}

// reviewMatches lists the session matches; a chosen match can be dismissed
// into the exclude file.
func (r *Router) reviewMatches(ctx context.Context) error {
	s := r.session
	if len(s.Matches) == 0 {
		candidate := r.candidateProfile()
		if err := r.filterMatches(ctx, candidate, scoring.RankOpportunities(candidate, catalog.Opportunities)); err != nil {
			return err
		}
	}

	items := make([]string, 0, len(s.Matches)+2)
	for _, m := range s.Matches {
		items = append(items, matchLabel(m))
	}
	if len(s.Matches) > 0 && r.deps.FilterConfig.ExcludeFile != "" {
		items = append(items, dismissAll)
	}
	items = append(items, actionBack)

	_, choice, err := r.deps.Prompter.Select("Your matches", items)
	if err != nil {
		return err
	}

	switch choice {
	case actionBack:
		return nil
	case dismissAll:
		return r.dismiss(s.Matches)
	}

	id := firstField(choice)
	idx := slices.IndexFunc(s.Matches, func(m scoring.RankedOpportunity) bool { return m.Opportunity.ID == id })
	if idx < 0 {
		return fmt.Errorf("there is no match with id %s", id)
	}
	match := s.Matches[idx]
	r.printMatch(match)

	dismiss, err := r.deps.Prompter.Confirm("Dismiss this opportunity")
	if err != nil || !dismiss {
		return err
	}
	return r.dismiss([]scoring.RankedOpportunity{match})
}

func (r *Router) printMatch(m scoring.RankedOpportunity) {
	o := m.Opportunity
	r.println(matchLabel(m))
	r.println(fmt.Sprintf("  %s, %s, %s, R$ %d to R$ %d", o.Level, o.City, o.WorkMode, o.SalaryMin, o.SalaryMax))
	if m.Synergy > 0 {
		r.println(fmt.Sprintf("  culture synergy %d%%", m.Synergy))
	}
	for _, reason := range m.Reasons {
		r.println("  +", reason)
	}
	if a, ok := r.session.Assessments[o.ID]; ok && a.Message != "" {
		r.println("  AI:", a.Message)
	}
}

// dismiss drops matches from the session and appends them to the exclude
// file when one is configured.
func (r *Router) dismiss(items []scoring.RankedOpportunity) error {
	dismissed := &filtering.Opportunities{Items: slices.Clone(items)}

	if path := r.deps.FilterConfig.ExcludeFile; path != "" {
		excluded, err := filtering.ReadExcluded(r.deps.Fs, path)
		if err != nil {
			return fmt.Errorf("read exclude file: %w", err)
		}
		excluded.Append(dismissed.ToExcluded(time.Now()))
		if err := excluded.WriteFile(r.deps.Fs, path); err != nil {
			return fmt.Errorf("write exclude file: %w", err)
		}
		r.logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("count", dismissed.Len()))
	}

	remaining := &filtering.Opportunities{Items: r.session.Matches}
	remaining.Exclude(dismissed.IDs())
	r.session.Matches = remaining.Items
	r.println(fmt.Sprintf("Dismissed %d opportunities.", dismissed.Len()))
	return nil
}

// browseJobs lists the backend jobs and applies to the chosen one.
func (r *Router) browseJobs(ctx context.Context) error {
	jobs, err := r.deps.API.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	if jobs.Len() == 0 {
		r.println("There are no open jobs right now.")
		return nil
	}

	items := make([]string, 0, jobs.Len()+1)
	for _, j := range jobs.Items {
		items = append(items, fmt.Sprintf("%s %s, %s, %s", j.ID, j.Title, j.CompanyName, j.Location))
	}
	items = append(items, actionBack)

	_, choice, err := r.deps.Prompter.Select("Open jobs", items)
	if err != nil || choice == actionBack {
		return err
	}

	job := jobs.FindByID(firstField(choice))
	if job == nil {
		return fmt.Errorf("there is no job with id %s", firstField(choice))
	}

	r.println(job.Title)
	if job.Description != "" {
		r.println(job.Description)
	}
	if len(job.Requirements) > 0 {
		r.println("Requirements:", strings.Join(job.Requirements, ", "))
		if skills := r.candidateProfile().HardSkills; len(skills) > 0 {
			r.println(fmt.Sprintf("Your skills match: %d%%", scoring.SkillsMatchPercentage(skills, job.Requirements)))
		}
	}

	apply, err := r.deps.Prompter.Confirm("Apply to this job")
	if err != nil || !apply {
		return err
	}
	if err := r.deps.API.Apply(ctx, job.ID); err != nil {
		return fmt.Errorf("apply to %s: %w", job.ID, err)
	}

	r.logger.Info("successfully applied to job", zap.String("job_id", job.ID), zap.String("job_title", job.Title))
	r.println("Application sent.")
	return nil
}

func salaryScreen(_ context.Context, r *Router) (Screen, error) {
	p := r.deps.Prompter
	q := scoring.BenchmarkQuery{}
	if d := r.session.DreamJob; d != nil {
		q = scoring.BenchmarkQuery{Position: d.Position, Level: d.Level, Industry: d.Industry, City: d.City}
	}
	if m := r.session.Matching; m != nil {
		q.Salary = m.Current.Salary
	}

	var err error
	if q.Position, err = p.Input("Position", q.Position, tui.Required); err != nil {
		return SalaryBenchmark, err
	}
	if q.Level, err = selectValue(p, "Level", catalog.Levels); err != nil {
		return SalaryBenchmark, err
	}
	if q.Industry, err = p.Input("Industry (optional)", q.Industry, nil); err != nil {
		return SalaryBenchmark, err
	}
	if q.City, err = p.Input("City (optional)", q.City, nil); err != nil {
		return SalaryBenchmark, err
	}
	raw, err := p.Input("Your salary (R$, optional)", itoa(q.Salary), optionalInt)
	if err != nil {
		return SalaryBenchmark, err
	}
	q.Salary = atoi(raw)

	result, err := scoring.Benchmark(q)
	if errors.Is(err, scoring.ErrNoBenchmark) {
		r.println(fmt.Sprintf("No salary data for %s %s yet.", q.Level, q.Position))
		return r.home(), nil
	}
	if err != nil {
		return r.home(), err
	}

	r.session.Benchmark = result
	printBenchmark(r, result)
	return r.home(), nil
}

func printBenchmark(r *Router, b *scoring.BenchmarkResult) {
	band := b.Band
	source := "exact match"
	if !b.Exact {
		source = fmt.Sprintf("estimated from %d rows, regional factor %.2f", b.Rows, b.Adjustment)
	}
	r.println(fmt.Sprintf("%s %s (%s)", band.Level, band.Position, source))
	r.println(fmt.Sprintf("  P25 R$ %d | P50 R$ %d | P75 R$ %d | P90 R$ %d", band.P25, band.P50, band.P75, band.P90))

	if !b.HasSalary {
		return
	}
	switch b.Percentile {
	case scoring.BelowP25:
		r.println("  Your salary is below the 25th percentile.")
	case scoring.AtP90:
		r.println("  Your salary is at the top 10% of the market.")
	default:
		r.println(fmt.Sprintf("  Your salary is at or above the %dth percentile.", b.Percentile))
	}
}

// selectValue offers values and returns the chosen one.
func selectValue(p tui.Prompter, label string, values []string) (string, error) {
	_, choice, err := p.Select(label, values)
	return choice, err
}

func workModeNames() []string {
	names := make([]string, 0, len(catalog.WorkModes))
	for _, m := range catalog.WorkModes {
		names = append(names, string(m))
	}
	return names
}
