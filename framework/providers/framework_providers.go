package providers

import (
	"errors"
	"io/fs"

	"go.uber.org/zap"

	"github.com/km-arc/go-genius/framework/config"
	"github.com/km-arc/go-genius/framework/container"
	"github.com/km-arc/go-genius/framework/debug"
	"github.com/km-arc/go-genius/framework/logging"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider exposes the environment configuration.
//
// Defined services:
//   - "config"        → *config.Config
//   - "configuration" → alias of "config"
//
// Parameters: app.*, log.*, container.*, debug.* (see config.Config.Parameters).
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(b *container.Builder) {
	b.MergeParameters(p.Config.Parameters())
	b.Instance("config", p.Config)
	b.Alias("config", "configuration")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider shares the application logger.
//
// Defined services:
//   - "logger" → *zap.Logger
//
// Classes:
//   - "zap.Logger" → logging.Constructor(level, encoding, output), for
//     definition files that need extra loggers.
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(b *container.Builder) {
	b.Instance("logger", p.Logger)
	b.AddClass("zap.Logger", logging.Constructor)
}

func (p *LoggingServiceProvider) Boot(c *container.Container) error {
	p.Logger.Debug("container booted", zap.Int("services", len(c.Names())))
	return nil
}

// ── DefinitionsServiceProvider ────────────────────────────────────────────────

// DefinitionsServiceProvider registers the parameters and services of a YAML
// definition file. Loading errors surface from Boot.
//
// When Optional is set, a missing file is skipped.
type DefinitionsServiceProvider struct {
	container.BaseProvider
	File     string
	Optional bool

	err error
}

func (p *DefinitionsServiceProvider) Register(b *container.Builder) {
	if p.File == "" {
		return
	}

	file, err := config.LoadServices(p.File)
	if err != nil {
		if p.Optional && errors.Is(err, fs.ErrNotExist) {
			return
		}
		p.err = err
		return
	}
	p.err = file.Apply(b)
}

func (p *DefinitionsServiceProvider) Boot(_ *container.Container) error {
	return p.err
}

// ── DebugServiceProvider ──────────────────────────────────────────────────────

// DebugServiceProvider defines the container inspector.
//
// Defined services:
//   - "debug.inspector" → *debug.Inspector, with the "logger" service set
type DebugServiceProvider struct {
	container.BaseProvider
}

func (p *DebugServiceProvider) Register(b *container.Builder) {
	b.AddClass("debug.Inspector", container.Func(debug.NewInspector))
	b.Define("debug.inspector", &container.Definition{
		Class:     "debug.Inspector",
		Arguments: container.Args(container.Service(container.SelfName)),
		Calls: []container.Call{
			{Method: "SetLogger", Arguments: container.Args(container.Service("logger"))},
		},
	})
}
