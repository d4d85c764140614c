package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/brooksai/slashhub/internal/route"
)

// DirName is the name of both the global (~/.slashhub) and repo (.slashhub) config directories.
const DirName = ".slashhub"

// Config holds application configuration.
type Config struct {
	// DefaultRoute is the active route of a chat before any slash command.
	DefaultRoute string `json:"default_route,omitempty"`

	// FreeSlashRoutes extends the built-in allowlist of sub-routes open to non-founders.
	FreeSlashRoutes []string `json:"free_slash_routes,omitempty"`

	// RegistrySeedPath points at a YAML file of official routes.
	// When set, the registry is seeded from it on startup (existing entries are updated).
	RegistrySeedPath string `json:"registry_seed_path,omitempty"`

	// MaxCustomRoutes caps the number of custom ATO routes per owner. 0 means unlimited.
	MaxCustomRoutes int `json:"max_custom_routes,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of type names to disable entirely.
	// Known types: "route", "ato", "chat", "usage".
	DisabledTypes []string `json:"disabled_types,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultRoute:    route.DefaultRoute,
		MaxCustomRoutes: 50,
	}
}

// Gate returns the founders gate for the configured free routes.
func (c *Config) Gate() *route.Gate {
	if c == nil {
		return route.NewGate()
	}
	return route.NewGate(c.FreeSlashRoutes...)
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.slashhub.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.slashhub) and repo (.slashhub) directories.
// Repo config is found by walking upward from startDir to find the nearest .slashhub/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .slashhub/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, DirName, "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.DefaultRoute = strings.TrimSpace(overlay.DefaultRoute)
	if result.DefaultRoute == "" {
		result.DefaultRoute = base.DefaultRoute
	}

	result.RegistrySeedPath = overlay.RegistrySeedPath
	if result.RegistrySeedPath == "" {
		result.RegistrySeedPath = base.RegistrySeedPath
	}

	result.MaxCustomRoutes = overlay.MaxCustomRoutes
	if result.MaxCustomRoutes == 0 {
		result.MaxCustomRoutes = base.MaxCustomRoutes
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	// Arrays: merge and deduplicate
	result.FreeSlashRoutes = mergeStringSlice(base.FreeSlashRoutes, overlay.FreeSlashRoutes)
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.DisabledTypes = mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, list := range [][]string{a, b} {
		for _, s := range list {
			s = strings.TrimSpace(s)
			if s != "" && !seen[s] {
				seen[s] = true
				result = append(result, s)
			}
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
