// Package router holds the interactive front end: the current screen, the
// session state accumulated across screens and the screens themselves.
package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/ai"
	"github.com/ravyz/ravyz/internal/filtering"
	"github.com/ravyz/ravyz/internal/flows"
	"github.com/ravyz/ravyz/internal/logger"
	"github.com/ravyz/ravyz/internal/mentor"
	"github.com/ravyz/ravyz/internal/metrics"
	"github.com/ravyz/ravyz/internal/ravyz"
	"github.com/ravyz/ravyz/internal/scoring"
	"github.com/ravyz/ravyz/internal/tui"
)

// Screen names a router destination.
type Screen string

const (
	Welcome                  Screen = "welcome"
	RoleSelect               Screen = "role_select"
	Registration             Screen = "registration"
	Login                    Screen = "login"
	DreamJob                 Screen = "dream_job"
	Matching                 Screen = "matching"
	CandidateDashboard       Screen = "candidate_dashboard"
	CompanyDashboard         Screen = "company_dashboard"
	JobBuilder               Screen = "job_builder"
	CandidateRecommendations Screen = "candidate_recommendations"
	SalaryBenchmark          Screen = "salary_benchmark"
	Mentor                   Screen = "mentor"
	Logout                   Screen = "logout"
	Exit                     Screen = "exit"
)

// ErrUnknownScreen is returned when navigation targets a screen that is not registered.
var ErrUnknownScreen = errors.New("unknown screen")

// API is the part of the backend client used by the screens.
type API interface {
	HasToken(ctx context.Context) bool
	Register(ctx context.Context, r ravyz.RegisterRequest) (map[string]any, error)
	Login(ctx context.Context, creds ravyz.Credentials) (string, error)
	Logout(ctx context.Context) error
	ListJobs(ctx context.Context) (*ravyz.Jobs, error)
	CreateJob(ctx context.Context, input ravyz.JobInput) (*ravyz.Job, error)
	Apply(ctx context.Context, jobID string) error
	GetCandidate(ctx context.Context) (*ravyz.CandidateProfile, error)
	UpdateCandidate(ctx context.Context, p ravyz.CandidateProfile) (*ravyz.CandidateProfile, error)
	UpdateCompany(ctx context.Context, p ravyz.CompanyProfile) (*ravyz.CompanyProfile, error)
}

// Webhook sends recorded answers to the voice mentor.
type Webhook interface {
	Enabled() bool
	Send(ctx context.Context, turn mentor.Turn) (*mentor.Reply, error)
}

// Player plays mentor replies one at a time.
type Player interface {
	Play(ctx context.Context, reply *mentor.Reply) (string, error)
	Stop()
}

type Deps struct {
	API      API
	Prompter tui.Prompter
	Logger   *zap.Logger
	Metrics  *metrics.Recorder
	Fs       afero.Fs

	Webhook   Webhook
	Player    Player
	Assistant ai.Mentor

	Filters      []filtering.Filter
	FilterConfig *filtering.Config
	Matcher      ai.Matcher
}

// Session is the state accumulated while moving between screens.
type Session struct {
	ID    string
	Role  ravyz.Role
	Email string

	Registration *flows.Registration
	DreamJob     *flows.DreamJob
	Matching     *flows.Matching
	Job          *flows.JobDraft

	CreatedJob  *ravyz.Job
	Matches     []scoring.RankedOpportunity
	Assessments map[string]*ai.FitAssessment
	Benchmark   *scoring.BenchmarkResult

	registered bool
}

// Reset forgets everything but the session id.
func (s *Session) Reset() {
	*s = Session{ID: s.ID}
}

// CandidateID identifies the candidate towards the mentor webhook.
func (s *Session) CandidateID() string {
	if s.Email != "" {
		return s.Email
	}
	return s.ID
}

// Handler runs a screen and returns the next one.
type Handler func(ctx context.Context, r *Router) (Screen, error)

type Router struct {
	deps    Deps
	session *Session
	screens map[Screen]Handler
	current Screen
	logger  *zap.Logger
}

func New(deps Deps, session *Session) *Router {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Prompter == nil {
		deps.Prompter = tui.NewTerminal()
	}
	if deps.Filters == nil {
		deps.Filters = filtering.Default()
	}
	if deps.FilterConfig == nil {
		deps.FilterConfig = &filtering.Config{}
	}
	if session == nil {
		session = &Session{}
	}

	r := &Router{
		deps:    deps,
		session: session,
		current: Welcome,
		logger:  logger.WithSession(deps.Logger, session.ID),
	}
	r.screens = map[Screen]Handler{
		Welcome:                  welcomeScreen,
		RoleSelect:               roleSelectScreen,
		Registration:             registrationScreen,
		Login:                    loginScreen,
		DreamJob:                 dreamJobScreen,
		Matching:                 matchingScreen,
		CandidateDashboard:       candidateDashboardScreen,
		CompanyDashboard:         companyDashboardScreen,
		JobBuilder:               jobBuilderScreen,
		CandidateRecommendations: recommendationsScreen,
		SalaryBenchmark:          salaryScreen,
		Mentor:                   mentorScreen,
		Logout:                   logoutScreen,
	}
	return r
}

// Handle replaces or adds a screen.
func (r *Router) Handle(name Screen, h Handler) {
	r.screens[name] = h
}

func (r *Router) Current() Screen { return r.current }

func (r *Router) Session() *Session { return r.session }

// Navigate moves to a screen without running it.
func (r *Router) Navigate(name Screen) error {
	if _, ok := r.screens[name]; !ok && name != Exit {
		return fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
	r.current = name
	return nil
}

// Step runs the current screen once and moves to the screen it returns.
// A failing screen reports its error to the user and stays current.
// Interruptions and unknown screens are returned to the caller.
func (r *Router) Step(ctx context.Context) error {
	handler, ok := r.screens[r.current]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScreen, r.current)
	}

	log := logger.WithFields(r.logger, logger.StringFields(logger.StringField{Key: logger.FieldScreen, Value: string(r.current)})...)
	r.deps.Metrics.ScreenVisited(string(r.current))

	next, err := handler(ctx, r)
	if err != nil {
		if isInterrupt(err) || errors.Is(err, context.Canceled) {
			return err
		}
		log.Warn("screen failed", zap.Error(err))
		r.deps.Prompter.Println("Error:", describeError(err))
		return nil
	}

	if _, ok := r.screens[next]; !ok && next != Exit {
		return fmt.Errorf("%w: %q", ErrUnknownScreen, next)
	}

	log.Debug("navigating", zap.String("next", string(next)))
	r.current = next
	return nil
}

// Run steps through screens from start until Exit. An interrupted prompt
// ends the run without error.
func (r *Router) Run(ctx context.Context, start Screen) error {
	if err := r.Navigate(start); err != nil {
		return err
	}

	for r.current != Exit {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Step(ctx); err != nil {
			if isInterrupt(err) {
				r.logger.Info("exiting", zap.String("reason", "interrupted"), zap.String(logger.FieldScreen, string(r.current)))
				return nil
			}
			return err
		}
	}

	r.logger.Info("exiting", zap.String("reason", "exit selected"))
	return nil
}

func describeError(err error) string {
	var apiErr *ravyz.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s (status %d)", apiErr.Error(), apiErr.StatusCode)
	}
	return err.Error()
}

// home is the dashboard of the session role, or the welcome screen.
func (r *Router) home() Screen {
	switch r.session.Role {
	case ravyz.RoleCandidate:
		return CandidateDashboard
	case ravyz.RoleCompany:
		return CompanyDashboard
	default:
		return Welcome
	}
}

func (r *Router) println(a ...any) {
	r.deps.Prompter.Println(a...)
}

// isInterrupt reports a prompt aborted by the user or a closed input.
func isInterrupt(err error) bool {
	return errors.Is(err, tui.ErrInterrupted) || errors.Is(err, tui.ErrEOF)
}
