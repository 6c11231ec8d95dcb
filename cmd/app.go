package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/ai"
	"github.com/ravyz/ravyz/internal/ai/gemini"
	"github.com/ravyz/ravyz/internal/filtering"
	"github.com/ravyz/ravyz/internal/logger"
	"github.com/ravyz/ravyz/internal/mentor"
	"github.com/ravyz/ravyz/internal/metrics"
	"github.com/ravyz/ravyz/internal/ravyz"
	"github.com/ravyz/ravyz/internal/router"
	"github.com/ravyz/ravyz/internal/secrets"
	"github.com/ravyz/ravyz/internal/tokenstore"
)

// application holds everything a command needs to talk to the backend.
type application struct {
	config    *Config
	base      *zap.Logger
	logger    *zap.Logger
	metrics   *metrics.Recorder
	api       *ravyz.Client
	fs        afero.Fs
	sessionID string

	closers []func() error
}

// bootstrap reads the config and builds the shared clients. Failures are fatal.
func bootstrap() *application {
	base, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), viper.GetString("log-file"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		base.Fatal("getting a config", zap.Error(err))
	}

	sessionID := uuid.NewString()
	lg := logger.WithSession(base, sessionID)

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	a := &application{
		config:    config,
		base:      base,
		logger:    lg,
		metrics:   metrics.New(),
		fs:        afero.NewOsFs(),
		sessionID: sessionID,
	}

	tokens, err := a.tokenStore()
	if err != nil {
		lg.Fatal("preparing the token store",
			zap.Error(err),
			zap.String("hint", "check the token-store section or set RAVYZ_TOKEN_FILE"),
		)
	}

	a.api = ravyz.New(config.APIURL, tokens, lg).WithMetrics(a.metrics)
	a.api.RequestID = sessionID
	if config.UserAgent != "" {
		a.api.UserAgent = config.UserAgent
	}

	return a
}

func (a *application) tokenStore() (ravyz.TokenStore, error) {
	cfg := a.config.TokenStore
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))

	switch backend {
	case "", tokenstore.BackendFile:
		path := a.config.TokenFile
		if path == "" {
			path = tokenstore.DefaultPath()
		}
		a.logger.Debug("using file token store", zap.String("path", path))
		return tokenstore.NewFile(a.fs, path), nil

	case tokenstore.BackendRedis:
		if cfg.Redis == nil || cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("token-store.redis.addr is required for the redis backend")
		}
		password, err := secrets.Optional(secrets.Source{
			Name:  "redis password",
			File:  cfg.Redis.PasswordFile,
			Value: cfg.Redis.Password,
		})
		if err != nil {
			return nil, err
		}

		store := tokenstore.NewRedis(tokenstore.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
			TTL:      cfg.Redis.TTL,
		})
		a.closers = append(a.closers, store.Close)
		a.logger.Debug("using redis token store", zap.String("addr", cfg.Redis.Addr))
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported token store backend: %s", cfg.Backend)
	}
}

// shutdown writes the metrics textfile and releases connections.
func (a *application) shutdown() {
	if err := a.metrics.WriteFile(a.config.MetricsFile); err != nil {
		a.logger.Warn("writing metrics file", zap.Error(err), zap.String("path", a.config.MetricsFile))
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Debug("closing", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// filters returns the opportunity pipeline with its config. The ai_fit step
// is disabled when no matcher could be built.
func (a *application) filters(matcher ai.Matcher) ([]filtering.Filter, *filtering.Config) {
	m := a.config.Matching
	cfg := &filtering.Config{
		MinimumMatch:      m.MinimumMatch,
		SalaryFloor:       m.SalaryFloor,
		ExcludedCompanies: m.ExcludedCompanies,
		ExcludeFile:       m.ExcludeFile,
	}

	steps := filtering.Default()
	if aiCfg := a.config.AI; aiCfg != nil && aiCfg.Enabled {
		cfg.AI = &filtering.AIConfig{
			Enabled:         true,
			MinimumFitScore: aiCfg.MinimumFitScore,
		}
		if aiCfg.Gemini != nil {
			cfg.AI.Gemini = &filtering.GeminiConfig{
				Model:        aiCfg.Gemini.Model,
				MaxRetries:   aiCfg.Gemini.MaxRetries,
				MaxLogLength: aiCfg.Gemini.MaxLogLength,
			}
		}
	}
	if matcher == nil {
		filtering.DisableByName(steps, "ai_fit", "ai matcher is not configured")
	}

	return steps, cfg
}

// aiServices builds the Gemini matcher and mentor assistant. Both are nil
// when no API key is configured; the matcher is also nil unless ai.enabled.
func (a *application) aiServices(ctx context.Context) (ai.Matcher, ai.Mentor) {
	cfg := a.config.AI
	if cfg == nil || cfg.Gemini == nil {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		a.logger.Warn("skipping AI services", zap.String("reason", "unsupported ai provider "+cfg.Provider))
		return nil, nil
	}

	apiKey, err := secrets.Optional(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil || apiKey == "" {
		a.logger.Warn("skipping AI services",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
		)
		return nil, nil
	}

	genLogger := a.logger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))
	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		a.logger.Warn("skipping AI services", zap.Error(err))
		return nil, nil
	}

	assistant := gemini.NewAssistant(generator, cfg.Gemini.MaxLogLength, logger.WithCommonFields(a.logger, "gemini", generator.Model()))
	if !cfg.Enabled {
		return nil, assistant
	}

	minScore := cfg.MinimumFitScore
	if minScore < 0 {
		minScore = 0
	}

	matcherLogger := logger.WithCommonFields(a.logger, "gemini", generator.Model()).
		With(zap.Float64("minimum_fit_score", minScore))

	matcher := gemini.NewMatcher(generator, minScore, cfg.Gemini.MaxLogLength, matcherLogger)
	matcher.SetPromptOverrides(gemini.PromptOverrides{
		ExtraCriteria:    cfg.Gemini.ExtraCriteria,
		DealBreakers:     cfg.Gemini.DealBreakers,
		Tone:             cfg.Gemini.Tone,
		UserInstructions: cfg.Gemini.UserInstructions,
	})

	return matcher, assistant
}

// mentorClients returns the voice webhook and the reply player. The webhook
// is nil when no url is configured.
func (a *application) mentorClients() (*mentor.Client, *mentor.Player) {
	cfg := a.config.Mentor

	dir := cfg.OutputDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), app+"-mentor")
	}
	player := mentor.NewPlayer(a.fs, dir, cfg.PlayerCommand, a.logger)

	if strings.TrimSpace(cfg.WebhookURL) == "" {
		return nil, player
	}
	client := mentor.NewClient(cfg.WebhookURL, a.logger)
	client.RequestID = a.sessionID
	return client, player
}

// routerDeps wires every service the interactive screens use.
func (a *application) routerDeps(ctx context.Context) router.Deps {
	matcher, assistant := a.aiServices(ctx)
	steps, filterCfg := a.filters(matcher)
	webhook, player := a.mentorClients()

	deps := router.Deps{
		API:          a.api,
		Logger:       a.base,
		Metrics:      a.metrics,
		Fs:           a.fs,
		Player:       player,
		Filters:      steps,
		FilterConfig: filterCfg,
	}
	if webhook != nil {
		deps.Webhook = webhook
	}
	if assistant != nil {
		deps.Assistant = assistant
	}
	if matcher != nil {
		deps.Matcher = matcher
	}
	return deps
}
