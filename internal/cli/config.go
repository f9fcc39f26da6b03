package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pthm/lineage"
)

const (
	maxWalkDepth = 25
)

// Config represents the lineage configuration from lineage.yaml.
type Config struct {
	// TablePrefix applies to every table set that does not set its own.
	TablePrefix string `mapstructure:"table_prefix"`

	// Database configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Tables lists the parent/child pairs the CLI operates on.
	Tables []TableConfig `mapstructure:"tables"`

	// Per-command configuration
	Create CreateConfig `mapstructure:"create"`
	Drop   DropConfig   `mapstructure:"drop"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// TableConfig describes one parent/child table pair.
type TableConfig struct {
	ParentTable string   `mapstructure:"parent_table"`
	ChildTable  string   `mapstructure:"child_table"`
	ParentType  string   `mapstructure:"parent_type"`
	ChildType   string   `mapstructure:"child_type"`
	TablePrefix string   `mapstructure:"table_prefix"`
	ForeignKey  string   `mapstructure:"foreign_key"`
	Sequence    string   `mapstructure:"sequence"`
	Conditions  []string `mapstructure:"conditions"`
}

// CreateConfig holds create command settings.
type CreateConfig struct {
	DryRun bool `mapstructure:"dry_run"`
}

// DropConfig holds drop command settings.
type DropConfig struct {
	DryRun            bool `mapstructure:"dry_run"`
	DropDiscriminator bool `mapstructure:"drop_discriminator"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	// 1. Set defaults first (lowest precedence)
	setDefaults(v)

	// 2. Set up environment variable binding
	v.SetEnvPrefix("LINEAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3. Find and load config file
	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	// 4. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("table_prefix", "")

	// Database defaults
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.sslmode", "prefer")

	// Create defaults
	v.SetDefault("create.dry_run", false)

	// Drop defaults
	v.SetDefault("drop.dry_run", false)
	v.SetDefault("drop.drop_discriminator", false)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for lineage.yaml or lineage.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	// Auto-discovery: walk up to .git or maxWalkDepth
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		// Try lineage.yaml then lineage.yml
		for _, name := range []string{"lineage.yaml", "lineage.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Check for repo boundary (.git file or directory)
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break // Stop at repo root
		}

		// Move up
		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		dir = parent
	}

	return "", nil // No config found, use defaults
}

// DSN returns the database connection string.
// If database.url is set, it's returned directly.
// Otherwise, builds a DSN from discrete fields.
func (c *Config) DSN() (string, error) {
	db := c.Database

	if db.URL != "" {
		return db.URL, nil
	}

	// Build DSN from discrete fields
	if db.Host == "" {
		return "", fmt.Errorf("database.host is required when database.url is not set")
	}
	if db.Name == "" {
		return "", fmt.Errorf("database.name is required when database.url is not set")
	}
	if db.User == "" {
		return "", fmt.Errorf("database.user is required when database.url is not set")
	}

	// Build postgres:// URL
	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   "/" + db.Name,
	}

	if db.Password != "" {
		u.User = url.UserPassword(db.User, db.Password)
	} else {
		u.User = url.User(db.User)
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// Spec converts a table entry into a lineage.Spec, applying the top-level
// table prefix when the entry does not set its own.
func (c *Config) Spec(t TableConfig) lineage.Spec {
	prefix := t.TablePrefix
	if prefix == "" {
		prefix = c.TablePrefix
	}
	return lineage.Spec{
		ParentTable:     t.ParentTable,
		ChildTable:      t.ChildTable,
		ParentType:      t.ParentType,
		ChildType:       t.ChildType,
		TablePrefix:     prefix,
		ForeignKey:      t.ForeignKey,
		SequenceName:    t.Sequence,
		ExtraConditions: t.Conditions,
	}
}

// ResolvedSpecs returns the specs the command should operate on. With a
// child filter only the matching table entry is returned; without one,
// every configured entry.
func (c *Config) ResolvedSpecs(child string) ([]lineage.Spec, error) {
	if child == "" {
		specs := make([]lineage.Spec, 0, len(c.Tables))
		for _, t := range c.Tables {
			specs = append(specs, c.Spec(t))
		}
		return specs, nil
	}

	for _, t := range c.Tables {
		if t.ChildTable == child {
			return []lineage.Spec{c.Spec(t)}, nil
		}
	}
	return nil, fmt.Errorf("no table entry with child_table %q in config", child)
}
