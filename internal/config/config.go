package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/seyio/leadpilot/pkg/models"
)

// BusinessProfile describes the operator's company, used to personalize
// generated outreach.
type BusinessProfile struct {
	CompanyName string   `mapstructure:"company_name"`
	Description string   `mapstructure:"description"`
	ValueProps  []string `mapstructure:"value_props"`
	Tone        string   `mapstructure:"tone"`
	SenderName  string   `mapstructure:"sender_name"`
	SenderTitle string   `mapstructure:"sender_title"`
}

// Qualification is the policy the qualify stage applies to imported jobs
type Qualification struct {
	LocationPreference string `mapstructure:"location_preference"` // remote_only, remote_or_hybrid, include_onsite, any
	PosterRequired     bool   `mapstructure:"poster_required"`
	CompanySizeMin     int    `mapstructure:"company_size_min"`
	CompanySizeMax     int    `mapstructure:"company_size_max"`
	CooldownDays       int    `mapstructure:"cooldown_days"`
}

// MessageTemplate is the subject/body template pair for one sequence step
type MessageTemplate struct {
	Subject string `mapstructure:"subject"`
	Body    string `mapstructure:"body"`
}

// Config holds the application configuration
type Config struct {
	// AI provider
	OpenAIKey    string `mapstructure:"openai_key"`
	AnthropicKey string `mapstructure:"anthropic_key"`
	AIProvider   string `mapstructure:"ai_provider"` // openai, anthropic, ollama, lmstudio
	DefaultModel string `mapstructure:"default_model"`
	OllamaURL    string `mapstructure:"ollama_url"`
	LMStudioURL  string `mapstructure:"lmstudio_url"`

	// Enrichment provider
	EnrichmentEnabled bool   `mapstructure:"enrichment_enabled"`
	EnrichmentURL     string `mapstructure:"enrichment_url"`
	EnrichmentKey     string `mapstructure:"enrichment_key"`

	// Batch size for classification round trips during bulk qualify
	ClassifyBatchSize int `mapstructure:"classify_batch_size"`

	Business      BusinessProfile            `mapstructure:"business"`
	TechStack     map[string][]string        `mapstructure:"tech_stack"` // grouped by category
	Qualification Qualification              `mapstructure:"qualification"`
	Templates     map[string]MessageTemplate `mapstructure:"templates"` // keyed by sequence step id
}

var AppConfig *Config

// OperatorTechStack flattens the grouped taxonomy into the ordered skill
// list the matcher consumes.
func (c *Config) OperatorTechStack() []string {
	var stack []string
	for _, skills := range c.TechStack {
		stack = append(stack, skills...)
	}
	return stack
}

// TemplateFor returns the configured template for a sequence step, falling
// back to the built-in default for that step.
func (c *Config) TemplateFor(step models.SequenceStep) MessageTemplate {
	if t, ok := c.Templates[string(step)]; ok && t.Body != "" {
		return t
	}
	return defaultTemplates[step]
}

// Initialize loads or creates the configuration file
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".leadpilot")
	configFile := filepath.Join(configDir, "config.yaml")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("ai_provider", "ollama")
	viper.SetDefault("default_model", "llama3.2")
	viper.SetDefault("ollama_url", "http://localhost:11434")
	viper.SetDefault("lmstudio_url", "http://localhost:1234")
	viper.SetDefault("openai_key", "")
	viper.SetDefault("anthropic_key", "")
	viper.SetDefault("enrichment_enabled", false)
	viper.SetDefault("enrichment_url", "")
	viper.SetDefault("enrichment_key", "")
	viper.SetDefault("classify_batch_size", 10)
	viper.SetDefault("qualification.location_preference", "remote_or_hybrid")
	viper.SetDefault("qualification.poster_required", false)
	viper.SetDefault("qualification.cooldown_days", 30)

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal into struct
	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Leadpilot Configuration
# AI Provider: openai, anthropic, ollama, lmstudio
ai_provider: ollama
default_model: llama3.2
ollama_url: http://localhost:11434
lmstudio_url: http://localhost:1234

# API Keys (keep this file secure!)
openai_key: ""
anthropic_key: ""

# Contact enrichment provider
enrichment_enabled: false
enrichment_url: ""
enrichment_key: ""

# Jobs submitted per classification round trip during bulk qualify
classify_batch_size: 10

business:
  company_name: ""
  description: ""
  value_props: []
  tone: "friendly and direct"
  sender_name: ""
  sender_title: ""

# Your tech stack, grouped by category. Jobs are scored against the
# flattened list.
tech_stack:
  languages: []
  frameworks: []
  infrastructure: []

qualification:
  location_preference: remote_or_hybrid  # remote_only, remote_or_hybrid, include_onsite, any
  poster_required: false
  company_size_min: 0
  company_size_max: 0
  cooldown_days: 30

# Per-step message templates. Tokens like {{contactName}} are substituted
# at compose time; leave a step out to use the built-in template.
templates: {}
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value
func Set(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".leadpilot", "config.yaml")
}
