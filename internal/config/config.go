package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/robustcoffee/mondrian/dialect"
	"github.com/robustcoffee/mondrian/internal/errors"
)

// DefaultFileName is looked up from the working directory upwards when no
// path is given.
const DefaultFileName = "mondrian.toml"

// Config representa o arquivo mondrian.toml
type Config struct {
	Default  string                    `toml:"default"`       // Dialeto usado quando nenhum nome é informado
	Log      []string                  `toml:"log,omitempty"` // Níveis de log: query, info, warn, error
	Dialects map[string]*DialectConfig `toml:"dialects"`
}

// DialectConfig describes one named dialect. Either Product (static
// metadata) or Driver and URL (probed metadata) must be set; with both, the
// probe runs and Product overrides detection.
type DialectConfig struct {
	Product             string `toml:"product,omitempty"`
	ProductVersion      string `toml:"product_version,omitempty"`
	Driver              string `toml:"driver,omitempty"`
	URL                 string `toml:"url,omitempty"` // pode usar env("DATABASE_URL") ou ${DATABASE_URL}
	IdentifierQuote     string `toml:"identifier_quote,omitempty"`
	NullOrdering        string `toml:"null_ordering,omitempty"`
	SQLMode             string `toml:"sql_mode,omitempty"`
	MaxColumnNameLength int    `toml:"max_column_name_length,omitempty"`
	CastInlineStrings   bool   `toml:"cast_inline_strings,omitempty"`
}

// Load reads and validates the configuration. With an empty path the file
// is searched for from the working directory upwards. A .env file found the
// same way is loaded first so env("VAR") references resolve.
func Load(configPath string) (*Config, error) {
	loadDotEnv()

	configPath, err := Locate(configPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("read %s: %v", configPath, err))
	}
	return Parse(data)
}

// Parse decodes, expands and validates a config document.
func Parse(data []byte) (*Config, error) {
	var config Config
	md, err := toml.Decode(string(data), &config)
	if err != nil {
		return nil, errors.NewConfigError(err.Error())
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.NewConfigError(fmt.Sprintf("unknown key %q", undecoded[0].String()))
	}

	config.expandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Locate returns configPath, or the nearest mondrian.toml when it is empty.
func Locate(configPath string) (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return findUpwards(DefaultFileName)
}

func loadDotEnv() {
	// Procura .env subindo os diretórios (ignora erro se não existir)
	if envPath, err := findUpwards(".env"); err == nil {
		_ = godotenv.Load(envPath)
	}
}

func findUpwards(name string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.NewConfigError(fmt.Sprintf("get working directory: %v", err))
	}

	dir := wd
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.NewConfigError(name + " not found")
		}
		dir = parent
	}
}

// expandEnvVars expande variáveis de ambiente no formato ${VAR}, $VAR ou env("VAR")
func (c *Config) expandEnvVars() {
	for _, dc := range c.Dialects {
		if dc == nil {
			continue
		}
		dc.URL = expandString(dc.URL)
		dc.ProductVersion = expandString(dc.ProductVersion)
	}
}

// expandString expande variáveis de ambiente em uma string
// Suporta: ${VAR}, $VAR, env("VAR") e env('VAR')
func expandString(s string) string {
	for {
		var start int
		var endQuote string

		if idx := strings.Index(s, `env("`); idx != -1 {
			start = idx
			endQuote = `")`
		} else if idx := strings.Index(s, `env('`); idx != -1 {
			start = idx
			endQuote = `')`
		} else {
			break
		}

		end := strings.Index(s[start+5:], endQuote)
		if end == -1 {
			break
		}
		end += start + 5

		s = s[:start] + os.Getenv(s[start+5:end]) + s[end+2:]
	}

	return os.ExpandEnv(s)
}

// Validate fills defaults and checks every dialect entry.
func (c *Config) Validate() error {
	if len(c.Log) == 0 {
		c.Log = []string{"warn", "error"}
	}

	if len(c.Dialects) == 0 {
		return errors.NewConfigError("at least one [dialects.<name>] table is required")
	}

	if c.Default == "" && len(c.Dialects) == 1 {
		for name := range c.Dialects {
			c.Default = name
		}
	}
	if c.Default != "" {
		if _, ok := c.Dialects[c.Default]; !ok {
			return errors.NewConfigError(fmt.Sprintf("default dialect %q is not defined", c.Default))
		}
	}

	for _, name := range c.Names() {
		if err := c.Dialects[name].validate(); err != nil {
			return errors.NewConfigError(fmt.Sprintf("dialects.%s: %v", name, err))
		}
	}
	return nil
}

func (dc *DialectConfig) validate() error {
	if dc == nil {
		return fmt.Errorf("empty table")
	}
	if dc.Product == "" && dc.Driver == "" {
		return fmt.Errorf("product or driver is required")
	}
	if dc.Product != "" {
		if _, err := dialect.ParseProduct(dc.Product); err != nil {
			return err
		}
	}
	if dc.NullOrdering != "" {
		if _, err := dialect.ParseNullOrdering(dc.NullOrdering); err != nil {
			return err
		}
	}
	if dc.Driver != "" && dc.URL == "" {
		return fmt.Errorf("url is required with driver %q (use env(\"DATABASE_URL\") or ${DATABASE_URL})", dc.Driver)
	}
	if dc.MaxColumnNameLength < 0 {
		return fmt.Errorf("max_column_name_length must not be negative")
	}
	return nil
}

// Names returns the configured dialect names, sorted.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Dialects))
	for name := range c.Dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dialect returns the named entry, or the default one for an empty name.
func (c *Config) Dialect(name string) (*DialectConfig, error) {
	if name == "" {
		name = c.Default
	}
	if name == "" {
		return nil, errors.NewConfigError("no dialect named and no default configured")
	}
	dc, ok := c.Dialects[name]
	if !ok {
		return nil, errors.NewConfigError(fmt.Sprintf("dialect %q is not defined", name))
	}
	return dc, nil
}
