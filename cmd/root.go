package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joescharf/connoisseur/internal/embedding"
	"github.com/joescharf/connoisseur/internal/lint"
	"github.com/joescharf/connoisseur/internal/output"
	"github.com/joescharf/connoisseur/internal/review"
	"github.com/joescharf/connoisseur/internal/rules"
	"github.com/joescharf/connoisseur/internal/store"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui        *output.UI
	dataStore store.Store

	verbose bool

	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "connoisseur",
	Short: "Code review assistant - diffs, symbols, lint, and embeddings",
	Long: `connoisseur reviews source files: it diffs them against a prior
revision, extracts declared symbols, collects lint-style findings, and
embeds file content for a persisted per-file index. Reviewer feedback
accumulates in a local log for later analysis.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/connoisseur/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "connoisseur")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CONNOISSEUR")
	viper.AutomaticEnv()

	// Service credentials follow the conventional env var names too.
	_ = viper.BindEnv("openai.api_key", "CONNOISSEUR_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = viper.BindEnv("anthropic.api_key", "CONNOISSEUR_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")

	home, _ := os.UserHomeDir()
	defaultStateDir := filepath.Join(home, ".config", "connoisseur")

	viper.SetDefault("state_dir", defaultStateDir)
	viper.SetDefault("db_path", filepath.Join(defaultStateDir, "connoisseur.db"))
	viper.SetDefault("vectors_dir", filepath.Join(defaultStateDir, "vectors"))
	viper.SetDefault("feedback_path", filepath.Join(defaultStateDir, "feedback.json"))
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.model", "text-embedding-3-small")
	viper.SetDefault("anthropic.api_key", "")
	viper.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	viper.SetDefault("lint.timeout", "10s")
	viper.SetDefault("embed.timeout", "15s")

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose

	// The history store is initialized lazily, only when commands actually
	// need it, so config/version commands run without a db.
}

// getStore returns the shared history store, initializing it on first call.
func getStore() (store.Store, error) {
	if dataStore != nil {
		return dataStore, nil
	}

	dbPath := viper.GetString("db_path")
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := s.Migrate(rootCmd.Context()); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	dataStore = s
	return dataStore, nil
}

// newAgent wires a review agent from the effective configuration and the
// rules file found under dir (the tree being reviewed).
func newAgent(dir string) (*review.Agent, *rules.Rules, error) {
	r, err := rules.Load(dir)
	if err != nil {
		return nil, nil, err
	}
	provider := newProvider()
	linter := lint.NewRunner(r, viper.GetDuration("lint.timeout"))
	return review.NewAgent(provider, linter, r), r, nil
}

func newProvider() *embedding.Provider {
	timeout := viper.GetDuration("embed.timeout")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return embedding.New(viper.GetString("openai.api_key"), viper.GetString("openai.model"), timeout)
}
