package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "ravyz"
)

type Config struct {
	APIURL      string            `mapstructure:"api-url"`
	UserAgent   string            `mapstructure:"user-agent"`
	TokenFile   string            `mapstructure:"token-file"`
	MetricsFile string            `mapstructure:"metrics-file"`
	TokenStore  *TokenStoreConfig `mapstructure:"token-store"`
	Mentor      *MentorConfig     `mapstructure:"mentor"`
	Matching    *MatchingConfig   `mapstructure:"matching"`
	AI          *AIConfig         `mapstructure:"ai"`
}

type TokenStoreConfig struct {
	Backend string       `mapstructure:"backend"`
	Redis   *RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	PasswordFile string        `mapstructure:"password-file"`
	DB           int           `mapstructure:"db"`
	Key          string        `mapstructure:"key"`
	TTL          time.Duration `mapstructure:"ttl"`
}

type MentorConfig struct {
	WebhookURL    string `mapstructure:"webhook-url"`
	OutputDir     string `mapstructure:"output-dir"`
	PlayerCommand string `mapstructure:"player-command"`
}

type MatchingConfig struct {
	MinimumMatch      int      `mapstructure:"minimum-match"`
	SalaryFloor       int      `mapstructure:"salary-floor"`
	ExcludedCompanies []string `mapstructure:"excluded-companies"`
	ExcludeFile       string   `mapstructure:"exclude-file"`
}

type AIConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Provider        string        `mapstructure:"provider"`
	MinimumFitScore float64       `mapstructure:"minimum-fit-score"`
	Gemini          *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile       string `mapstructure:"api-key-file"`
	Model            string `mapstructure:"model"`
	MaxRetries       int    `mapstructure:"max-retries"`
	MaxLogLength     int    `mapstructure:"max-log-length"`
	ExtraCriteria    string `mapstructure:"extra-criteria"`
	DealBreakers     string `mapstructure:"deal-breakers"`
	Tone             string `mapstructure:"tone"`
	UserInstructions string `mapstructure:"user-instructions"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ravyz is a terminal front end for the RAVYZ job matching platform",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"api-url":                         "RAVYZ_API_URL",
		"token-file":                      "RAVYZ_TOKEN_FILE",
		"ai.gemini.api-key-file":          "GEMINI_API_KEY_FILE",
		"mentor.webhook-url":              "RAVYZ_MENTOR_WEBHOOK_URL",
		"token-store.redis.addr":          "RAVYZ_REDIS_ADDR",
		"token-store.redis.password-file": "RAVYZ_REDIS_PASSWORD_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ravyz.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("api-url", "", "backend API base url (default is http://localhost:3000/api)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every setting has a usable default, so only an explicitly given or
	// broken config file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.TokenStore == nil {
		config.TokenStore = &TokenStoreConfig{}
	}
	if config.Mentor == nil {
		config.Mentor = &MentorConfig{}
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{}
	}

	return config, nil
}
