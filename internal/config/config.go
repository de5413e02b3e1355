package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"redmics/internal/render"
)

// BasicAuthConfig holds HTTP Basic Auth credentials for the feed endpoint.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// RenderDefaults are the strategies used when a feed URL does not select its
// own. The values match the option names understood by internal/render.
type RenderDefaults struct {
	Issues      string `yaml:"issues" json:"issues"`
	Versions    string `yaml:"versions" json:"versions"`
	Summary     string `yaml:"summary" json:"summary"`
	Description string `yaml:"description" json:"description"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the calendar feed.
	Listen string `yaml:"listen" json:"listen"`

	// Hostname is the deployment host name embedded in every entry UID.
	// It must stay stable across renders or subscribed clients will see
	// every entry as new.
	Hostname string `yaml:"hostname" json:"hostname"`

	// BaseURL is the external root of the tracker's web UI; entry deep
	// links are built below it. No trailing slash.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// ItemsFile is the YAML file the file-backed query source reads issues
	// and versions from.
	ItemsFile string `yaml:"items_file" json:"items_file"`

	// PriorityLevels is the size of the tracker's ordered priority scale.
	PriorityLevels int `yaml:"priority_levels" json:"priority_levels"`

	// Render holds the default rendering strategies.
	Render RenderDefaults `yaml:"render" json:"render"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:         "127.0.0.1:8080",
		Hostname:       "localhost:3000",
		BaseURL:        "http://localhost:3000",
		ItemsFile:      "/var/lib/redmics/items.yaml",
		PriorityLevels: 5,
		Render: RenderDefaults{
			Issues:      string(render.IssueEndDate),
			Versions:    string(render.VersionEndDate),
			Summary:     string(render.SummaryStatus),
			Description: string(render.DescriptionFull),
		},
		BasicAuth: nil,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly. Unknown strategy names
// are replaced by the defaults rather than carried into a render pass.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.Hostname == "" {
		c.Hostname = def.Hostname
	}
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.ItemsFile == "" {
		c.ItemsFile = def.ItemsFile
	}
	if c.PriorityLevels <= 0 {
		c.PriorityLevels = def.PriorityLevels
	}

	if _, err := render.ParseIssueStrategy(c.Render.Issues); err != nil {
		c.Render.Issues = def.Render.Issues
	}
	if _, err := render.ParseVersionStrategy(c.Render.Versions); err != nil {
		c.Render.Versions = def.Render.Versions
	}
	if _, err := render.ParseSummaryStrategy(c.Render.Summary); err != nil {
		c.Render.Summary = def.Render.Summary
	}
	if _, err := render.ParseDescriptionStrategy(c.Render.Description); err != nil {
		c.Render.Description = def.Render.Description
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".redmics-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Set permissions to 0600 on temp file before rename.
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	// Rename over the target path.
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	return nil
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
