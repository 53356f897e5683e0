package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configForce bool

// configDirFunc returns the config directory path, replaceable in tests.
var configDirFunc = defaultConfigDir

func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "connoisseur"), nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or manage configuration",
	Long: `Show or manage connoisseur configuration.

Running bare 'connoisseur config' is the same as 'connoisseur config show'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config file with commented defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configInitRun()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration with sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configEditRun()
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

// configTemplate is the template for generating config.yaml with comments.
const configTemplate = `# connoisseur configuration
# See: connoisseur config show (for effective values and sources)

# State/data directory (default: ~/.config/connoisseur)
# state_dir: {{ .StateDir }}

# Review history database path
# db_path: {{ .DBPath }}

# Embedding index directory
# vectors_dir: {{ .VectorsDir }}

# Feedback log path
# feedback_path: {{ .FeedbackPath }}

# OpenAI embedding service (falls back to a local encoding when unset)
openai:
  # api_key: ""  # or set OPENAI_API_KEY
  model: "{{ .OpenAIModel }}"

# Anthropic, used only by 'review --explain'
anthropic:
  # api_key: ""  # or set ANTHROPIC_API_KEY
  model: "{{ .AnthropicModel }}"

# External lint tool
lint:
  timeout: "{{ .LintTimeout }}"
`

type configTemplateData struct {
	StateDir       string
	DBPath         string
	VectorsDir     string
	FeedbackPath   string
	OpenAIModel    string
	AnthropicModel string
	LintTimeout    string
}

func configFilePath() (string, error) {
	dir, err := configDirFunc()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func configInitRun() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if !configForce {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", cfgPath)
		}
		ui.Warning("Overwriting existing config file")
	}

	data := configTemplateData{
		StateDir:       viper.GetString("state_dir"),
		DBPath:         viper.GetString("db_path"),
		VectorsDir:     viper.GetString("vectors_dir"),
		FeedbackPath:   viper.GetString("feedback_path"),
		OpenAIModel:    viper.GetString("openai.model"),
		AnthropicModel: viper.GetString("anthropic.model"),
		LintTimeout:    viper.GetString("lint.timeout"),
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("template execute error: %w", err)
	}

	dir := filepath.Dir(cfgPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(cfgPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	ui.Success("Config file created: %s", cfgPath)
	fmt.Fprintln(ui.Out)
	fmt.Fprint(ui.Out, buf.String())
	return nil
}

// configKeyInfo describes a config key for display purposes.
type configKeyInfo struct {
	Key    string
	EnvVar string
	Secret bool
}

var configKeys = []configKeyInfo{
	{Key: "state_dir", EnvVar: "CONNOISSEUR_STATE_DIR"},
	{Key: "db_path", EnvVar: "CONNOISSEUR_DB_PATH"},
	{Key: "vectors_dir", EnvVar: "CONNOISSEUR_VECTORS_DIR"},
	{Key: "feedback_path", EnvVar: "CONNOISSEUR_FEEDBACK_PATH"},
	{Key: "openai.api_key", EnvVar: "OPENAI_API_KEY", Secret: true},
	{Key: "openai.model", EnvVar: "CONNOISSEUR_OPENAI_MODEL"},
	{Key: "anthropic.api_key", EnvVar: "ANTHROPIC_API_KEY", Secret: true},
	{Key: "anthropic.model", EnvVar: "CONNOISSEUR_ANTHROPIC_MODEL"},
	{Key: "lint.timeout", EnvVar: "CONNOISSEUR_LINT_TIMEOUT"},
	{Key: "embed.timeout", EnvVar: "CONNOISSEUR_EMBED_TIMEOUT"},
}

func configShowRun() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		ui.Info("Config file: %s", cfgPath)
	} else {
		ui.Info("Config file: (none)")
	}
	fmt.Fprintln(ui.Out)

	fileValues := readConfigFileValues(cfgPath)

	for _, k := range configKeys {
		val := viper.Get(k.Key)
		if k.Secret {
			val = maskSecret(viper.GetString(k.Key))
		}
		source := detectSource(k.Key, k.EnvVar, fileValues)
		fmt.Fprintf(ui.Out, "  %-22s %v  %s\n", k.Key, val, source)
	}

	return nil
}

// maskSecret hides all but a short prefix of a credential.
func maskSecret(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + strings.Repeat("*", 8)
}

// readConfigFileValues reads the raw YAML file and returns a flat map of keys present in it.
func readConfigFileValues(path string) map[string]bool {
	result := make(map[string]bool)

	data, err := os.ReadFile(path)
	if err != nil {
		return result
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return result
	}

	flattenKeys("", parsed, result)
	return result
}

// flattenKeys recursively flattens a nested map to dot-notation keys.
func flattenKeys(prefix string, m map[string]any, result map[string]bool) {
	for key, val := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := val.(map[string]any); ok {
			flattenKeys(fullKey, nested, result)
		} else {
			result[fullKey] = true
		}
	}
}

// detectSource determines where a config value is coming from.
func detectSource(key, envVar string, fileValues map[string]bool) string {
	if _, ok := os.LookupEnv(envVar); ok {
		return fmt.Sprintf("(env: %s)", envVar)
	}
	if fileValues[key] {
		return "(file)"
	}
	return "(default)"
}

func configEditRun() error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		return fmt.Errorf("$EDITOR is not set (e.g. export EDITOR=vim)")
	}

	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s (run 'connoisseur config init' first)", cfgPath)
	}

	editCmd := exec.Command(editor, cfgPath)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	return editCmd.Run()
}
