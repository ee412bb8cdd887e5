package catapult

import (
	"os"

	"github.com/nyaruka/ezconf"
)

// Config is how credentials reach the client when they come from the environment
// rather than code. Values load from defaults, then bandwidth.toml (or the file
// named by BANDWIDTH_CONFIG_FILE), then BANDWIDTH_* environment variables, then
// command line flags.
type Config struct {
	UserID    string `validate:"required" help:"the Catapult user id injected into per-user paths"`
	APIToken  string `validate:"required" help:"the API token used as the basic auth username"`
	APISecret string `validate:"required" help:"the API secret used as the basic auth password"`
	BaseURL   string `help:"the base URL of the Catapult API"`
}

// NewDefaultConfig returns a new default configuration object
func NewDefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
	}
}

// LoadConfig loads configuration from the environment
func LoadConfig() *Config {
	config := NewDefaultConfig()

	files := []string{"bandwidth.toml"}
	if f := os.Getenv("BANDWIDTH_CONFIG_FILE"); f != "" {
		files = []string{f}
	}

	loader := ezconf.NewLoader(config, "bandwidth", "Catapult API credentials", files)
	loader.MustLoad()

	return config
}

// Credentials returns the credentials struct these settings describe
func (c *Config) Credentials() (*Credentials, error) {
	creds := &Credentials{UserID: c.UserID, APIToken: c.APIToken, APISecret: c.APISecret}
	if err := validateData(creds); err != nil {
		return nil, err
	}
	return creds, nil
}
