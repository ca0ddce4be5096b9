package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/nikogura/resume-builder/pkg/cache"
	"github.com/nikogura/resume-builder/pkg/llm"
	"github.com/pkg/errors"
)

// Environment variables read by Load.
const (
	EnvAPIKey       = "ANTHROPIC_API_KEY"
	EnvLegacyAPIKey = "claude_api_key"
	EnvModel        = "RESUME_BUILDER_MODEL"
)

// Defaults for command outputs.
const (
	DefaultOutputFile = "resume.docx"
	DefaultCacheFile  = cache.DefaultPath
)

// Config represents the application configuration.
type Config struct {
	AnthropicAPIKey string        `json:"anthropic_api_key"`
	Model           string        `json:"model,omitempty"`
	Contact         ContactConfig `json:"contact"`
	Defaults        DefaultConfig `json:"defaults"`
}

// ContactConfig holds profile links used when the structured data omits them.
type ContactConfig struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputFile string `json:"output_file"`
	CacheFile  string `json:"cache_file"`
}

// DefaultPath returns ~/.resume-builder/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".resume-builder", "config.json")
	return path, err
}

// Load reads configuration from file with .env and environment variable overrides.
// A missing file at the default location is not an error; a missing explicit path is.
func Load(configPath string) (cfg Config, err error) {
	// Values already in the environment win over .env
	err = godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		err = errors.Wrap(err, "failed to load .env")
		return cfg, err
	}
	err = nil

	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'resume-builder init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	cfg.applyEnv()

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func (c *Config) applyEnv() {
	if apiKey := os.Getenv(EnvAPIKey); apiKey != "" {
		c.AnthropicAPIKey = apiKey
	} else if apiKey = os.Getenv(EnvLegacyAPIKey); apiKey != "" {
		c.AnthropicAPIKey = apiKey
	}

	if model := os.Getenv(EnvModel); model != "" {
		c.Model = model
	}
}

// Validate checks configured values and fills in defaults.
func (c *Config) Validate() (err error) {
	err = checkURL("contact.github", c.Contact.GitHub)
	if err != nil {
		return err
	}

	err = checkURL("contact.linkedin", c.Contact.LinkedIn)
	if err != nil {
		return err
	}

	if c.Defaults.OutputFile == "" {
		c.Defaults.OutputFile = DefaultOutputFile
	}

	if c.Defaults.CacheFile == "" {
		c.Defaults.CacheFile = DefaultCacheFile
	}

	return err
}

func checkURL(field, value string) (err error) {
	if value == "" {
		return err
	}

	u, parseErr := url.ParseRequestURI(value)
	if parseErr != nil || u.Host == "" {
		err = errors.Errorf("%s is not a valid URL: %s", field, value)
		return err
	}

	return err
}

// ResolveAPIKey returns override when set, otherwise the configured key.
func (c *Config) ResolveAPIKey(override string) (apiKey string, err error) {
	apiKey = override
	if apiKey == "" {
		apiKey = c.AnthropicAPIKey
	}

	if apiKey == "" {
		err = errors.Errorf("an API key is required (pass it as an argument, set %s, or set anthropic_api_key in config)", EnvAPIKey)
		return apiKey, err
	}

	return apiKey, err
}

// ResolveModel returns override when set, otherwise the configured or default model.
func (c *Config) ResolveModel(override string) (model string) {
	switch {
	case override != "":
		model = override
	case c.Model != "":
		model = c.Model
	default:
		model = llm.DefaultModel
	}
	return model
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		AnthropicAPIKey: "sk-ant-api03-...",
		Model:           llm.DefaultModel,
		Contact: ContactConfig{
			GitHub:   "https://github.com/your-name",
			LinkedIn: "https://www.linkedin.com/in/your-name",
		},
		Defaults: DefaultConfig{
			OutputFile: DefaultOutputFile,
			CacheFile:  DefaultCacheFile,
		},
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
