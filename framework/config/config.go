package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/km-arc/go-genius/framework/container"
	"github.com/km-arc/go-genius/framework/validation"
)

// Config is the typed environment configuration of an application.
type Config struct {
	App       AppConfig
	Log       LogConfig
	Container ContainerConfig
	Debug     DebugConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
}

type LogConfig struct {
	Level    string // debug | info | warn | error
	Encoding string // console | json
	Output   string // stderr | stdout | file path
}

type ContainerConfig struct {
	Services string // YAML definition file; empty disables loading
}

type DebugConfig struct {
	Addr string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "go-genius"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
		},
		Log: LogConfig{
			Level:    env("LOG_LEVEL", "debug"),
			Encoding: env("LOG_ENCODING", "console"),
			Output:   env("LOG_OUTPUT", "stderr"),
		},
		Container: ContainerConfig{
			Services: env("CONTAINER_SERVICES", "config/services.yaml"),
		},
		Debug: DebugConfig{
			Addr: env("DEBUG_ADDR", ":8000"),
		},
	}
}

// Validate checks the values Load could not default safely.
func (c *Config) Validate() error {
	v := validation.Make(map[string]string{
		"APP_ENV":      c.App.Env,
		"LOG_LEVEL":    c.Log.Level,
		"LOG_ENCODING": c.Log.Encoding,
		"LOG_OUTPUT":   c.Log.Output,
		"DEBUG_ADDR":   c.Debug.Addr,
	}, validation.Rules{
		"APP_ENV":      "required|in:local,production,testing",
		"LOG_LEVEL":    "required|in:debug,info,warn,error",
		"LOG_ENCODING": "required|in:console,json",
		"LOG_OUTPUT":   "required",
		"DEBUG_ADDR":   `required|regex:^[^:]*:[0-9]+$`,
	})
	if v.Fails() {
		return v.Errors()
	}
	return nil
}

// Parameters exposes the configuration to the container as app.*, log.*,
// container.* and debug.* parameters.
func (c *Config) Parameters() container.Parameters {
	return container.Parameters{
		"app": map[string]any{
			"name":  c.App.Name,
			"env":   c.App.Env,
			"debug": c.App.Debug,
		},
		"log": map[string]any{
			"level":    c.Log.Level,
			"encoding": c.Log.Encoding,
			"output":   c.Log.Output,
		},
		"container": map[string]any{
			"services": c.Container.Services,
		},
		"debug": map[string]any{
			"addr": c.Debug.Addr,
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
