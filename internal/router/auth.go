package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/catalog"
	"github.com/ravyz/ravyz/internal/flows"
	"github.com/ravyz/ravyz/internal/ravyz"
	"github.com/ravyz/ravyz/internal/scoring"
	"github.com/ravyz/ravyz/internal/wizard"
)

const (
	welcomeResume   = "Continue with saved login"
	welcomeRegister = "Create an account"
	welcomeLogin    = "Log in"
	welcomeSalary   = "Salary benchmark"
	welcomeExit     = "Exit"

	roleCandidate = "Candidate: find my dream job"
	roleCompany   = "Company: hire talent"
)

func welcomeScreen(ctx context.Context, r *Router) (Screen, error) {
	r.println("RAVYZ: the job that matches who you are.")

	items := []string{welcomeRegister, welcomeLogin, welcomeSalary, welcomeExit}
	if r.deps.API.HasToken(ctx) {
		items = append([]string{welcomeResume}, items...)
	}

	_, choice, err := r.deps.Prompter.Select("What do you want to do?", items)
	if err != nil {
		return Welcome, err
	}

	switch choice {
	case welcomeResume:
		return r.resume(ctx)
	case welcomeRegister:
		return RoleSelect, nil
	case welcomeLogin:
		return Login, nil
	case welcomeSalary:
		return SalaryBenchmark, nil
	default:
		return Exit, nil
	}
}

func roleSelectScreen(_ context.Context, r *Router) (Screen, error) {
	_, choice, err := r.deps.Prompter.Select("Who are you?", []string{roleCandidate, roleCompany, actionBack})
	if err != nil {
		return RoleSelect, err
	}

	var role ravyz.Role
	switch choice {
	case roleCandidate:
		role = ravyz.RoleCandidate
	case roleCompany:
		role = ravyz.RoleCompany
	default:
		return Welcome, nil
	}

	s := r.session
	if s.Registration == nil {
		s.Registration = &flows.Registration{}
	}
	s.Registration.Role = role
	return Registration, nil
}

func registrationScreen(ctx context.Context, r *Router) (Screen, error) {
	s := r.session
	if s.Registration == nil {
		return RoleSelect, nil
	}

	w, err := flows.NewRegistration(s.Registration,
		wizard.OnComplete(func(reg *flows.Registration) error { return r.register(ctx, reg) }),
		wizard.WithLogger[*flows.Registration](r.logger),
	)
	if err != nil {
		return Welcome, err
	}

	outcome, err := runWizard(ctx, r, w, fillRegistration)
	if err != nil {
		return Registration, err
	}
	if outcome == wizard.Exited {
		return RoleSelect, nil
	}

	s.Registration = nil
	if s.Role == ravyz.RoleCompany {
		return CompanyDashboard, nil
	}
	return DreamJob, nil
}

func fillRegistration(_ context.Context, r *Router, reg *flows.Registration, step string, _ int) error {
	p := r.deps.Prompter
	var err error

	switch step {
	case "personal":
		if reg.Name, err = p.Input("Full name", reg.Name, nil); err != nil {
			return err
		}
		if reg.Document, err = p.Input("CPF or CNPJ", reg.Document, nil); err != nil {
			return err
		}
		reg.Phone, err = p.Input("Phone", reg.Phone, nil)
		return err

	case "account":
		if reg.Email, err = p.Input("Email", reg.Email, nil); err != nil {
			return err
		}
		if reg.Password, err = p.Secret("Password"); err != nil {
			return err
		}
		if reg.PasswordConfirm, err = p.Secret("Confirm password"); err != nil {
			return err
		}
		reg.AcceptedTerms, err = p.Confirm("Accept the terms of use")
		return err

	case "import":
		initial := ""
		if reg.Imported != nil {
			initial = reg.Imported.URL
		}
		raw, err := p.Input("LinkedIn or GitHub profile URL (optional)", initial, nil)
		if err != nil || strings.TrimSpace(raw) == "" {
			return err
		}
		profile, err := flows.ImportProfile(raw)
		if err != nil {
			r.println("Import skipped:", err.Error())
			return nil
		}
		reg.Imported = profile
		r.println(fmt.Sprintf("Imported %s profile %s", profile.Source, profile.Handle))
	}
	return nil
}

// register creates the account, logs in and stores the personal data on the
// new profile. The session role is set only once all three succeeded. A
// repeated call after a failure does not register again.
func (r *Router) register(ctx context.Context, reg *flows.Registration) error {
	api := r.deps.API
	req := reg.Request()

	if !strings.EqualFold(r.session.Email, req.Email) || !r.session.registered {
		if err := flows.Validate(flows.SchemaRegistration, req); err != nil {
			return err
		}
		if _, err := api.Register(ctx, req); err != nil {
			return fmt.Errorf("register: %w", err)
		}
		r.session.Email = req.Email
		r.session.registered = true
		r.logger.Info("account registered", zap.String("role", string(req.Role)))
	}

	if _, err := api.Login(ctx, ravyz.Credentials{Email: req.Email, Password: req.Password}); err != nil {
		return fmt.Errorf("login after registration: %w", err)
	}

	// Without the profile row a candidate would later be taken for a company.
	var err error
	switch req.Role {
	case ravyz.RoleCompany:
		_, err = api.UpdateCompany(ctx, ravyz.CompanyProfile{Name: reg.Name, Document: reg.Document, Phone: reg.Phone})
	default:
		_, err = api.UpdateCandidate(ctx, ravyz.CandidateProfile{Name: reg.Name, Document: reg.Document, Phone: reg.Phone})
	}
	if err != nil {
		return fmt.Errorf("store personal data: %w", err)
	}

	r.session.Role = req.Role
	return nil
}

func loginScreen(ctx context.Context, r *Router) (Screen, error) {
	p := r.deps.Prompter

	email, err := p.Input("Email (empty to go back)", r.session.Email, nil)
	if err != nil {
		return Login, err
	}
	if email == "" {
		return Welcome, nil
	}
	if !flows.ValidEmail(email) {
		return Login, fmt.Errorf("%q is not a valid email", email)
	}

	password, err := p.Secret("Password")
	if err != nil {
		return Login, err
	}

	if _, err := r.deps.API.Login(ctx, ravyz.Credentials{Email: email, Password: password}); err != nil {
		return Login, fmt.Errorf("login: %w", err)
	}
	r.session.Email = email
	r.logger.Info("logged in")

	return r.resume(ctx)
}

// resume restores the session of a logged in user and picks the landing screen.
func (r *Router) resume(ctx context.Context) (Screen, error) {
	role, profile, err := r.detectRole(ctx)
	if err != nil {
		return Welcome, err
	}
	r.session.Role = role

	if role == ravyz.RoleCompany {
		return CompanyDashboard, nil
	}

	if profile == nil || strings.TrimSpace(profile.Position) == "" {
		return DreamJob, nil
	}

	r.session.DreamJob = flows.DreamJobFromProfile(profile)
	candidate := r.session.DreamJob.CandidateProfile()
	if err := r.filterMatches(ctx, candidate, scoring.RankOpportunities(candidate, catalog.Opportunities)); err != nil {
		r.logger.Warn("computing matches failed", zap.Error(err))
	}
	return CandidateDashboard, nil
}

// detectRole asks for the candidate profile. Company accounts are refused by
// that endpoint.
func (r *Router) detectRole(ctx context.Context) (ravyz.Role, *ravyz.CandidateProfile, error) {
	profile, err := r.deps.API.GetCandidate(ctx)
	if err == nil {
		return ravyz.RoleCandidate, profile, nil
	}

	var apiErr *ravyz.APIError
	if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusForbidden || apiErr.StatusCode == http.StatusNotFound) {
		return ravyz.RoleCompany, nil, nil
	}
	return "", nil, fmt.Errorf("load profile: %w", err)
}

func logoutScreen(ctx context.Context, r *Router) (Screen, error) {
	if err := r.deps.API.Logout(ctx); err != nil {
		r.logger.Warn("clearing the stored token failed", zap.Error(err))
	}
	if r.deps.Player != nil {
		r.deps.Player.Stop()
	}

	r.session.Reset()
	r.println("You are logged out.")
	return Welcome, nil
}

// requireRole sends anonymous users to the welcome screen.
func (r *Router) requireRole(role ravyz.Role) bool {
	if r.session.Role == role {
		return true
	}
	r.println("Please log in first.")
	return false
}
