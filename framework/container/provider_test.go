package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-genius/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalls int
	bootCalled    bool
	booted        any
}

func (p *eagerProvider) Register(b *container.Builder) {
	p.registerCalls++
	b.Define("eager-svc", &container.Definition{
		Factory: func([]any) (any, error) { return "eager", nil },
	})
}

func (p *eagerProvider) Boot(c *container.Container) error {
	p.bootCalled = true
	var err error
	p.booted, err = c.Get("eager-svc")
	return err
}

// multiProvider registers classes, parameters and definitions.
type multiProvider struct {
	container.BaseProvider
}

func (p *multiProvider) Register(b *container.Builder) {
	b.AddClass("Node", newNode)
	b.SetParameter("greek.alpha", "α")
	b.MergeParameters(map[string]any{"greek": map[string]any{"beta": "β"}})
	b.Define("alpha", &container.Definition{Class: "Node", Arguments: container.Args(container.Parameter("greek.alpha"))})
	b.Define("beta", &container.Definition{Class: "Node", Arguments: container.Args(container.Parameter("greek.beta"))})
}

type failingProvider struct {
	container.BaseProvider
}

func (p *failingProvider) Register(*container.Builder) {}

func (p *failingProvider) Boot(*container.Container) error { return errors.New("not ready") }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_Register_CallsRegisterOnce(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())

	p := &eagerProvider{}
	reg.Register(p)
	reg.Register(p)

	assert.Equal(t, 1, p.registerCalls)
	assert.Len(t, reg.Providers(), 1)
}

func TestRegistry_Boot_CallsBootAfterBuild(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	p := &eagerProvider{}
	reg.Register(p)

	assert.False(t, p.bootCalled)
	assert.False(t, reg.Booted())

	require.NoError(t, reg.Boot())

	assert.True(t, p.bootCalled)
	assert.Equal(t, "eager", p.booted)
	assert.True(t, reg.Booted())
}

func TestRegistry_Boot_Idempotent(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	reg.Register(&eagerProvider{})

	require.NoError(t, reg.Boot())
	require.NoError(t, reg.Boot())
	assert.Same(t, reg.Build(), reg.Build())
}

func TestRegistry_Boot_StopsOnError(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	after := &eagerProvider{}
	reg.Register(&failingProvider{})
	reg.Register(after)

	err := reg.Boot()

	assert.EqualError(t, err, "booting *container_test.failingProvider: not ready")
	assert.False(t, after.bootCalled)
	assert.False(t, reg.Booted())
}

func TestRegistry_Register_AfterBuildPanics(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	reg.Build()

	assert.Panics(t, func() { reg.Register(&eagerProvider{}) })
}

func TestRegistry_MultiProvider(t *testing.T) {
	reg := container.NewProviderRegistry(container.NewBuilder())
	reg.Register(&multiProvider{})
	c := reg.Build()

	alpha, err := container.Resolve[*node](c, "alpha")
	require.NoError(t, err)
	beta, err := container.Resolve[*node](c, "beta")
	require.NoError(t, err)

	assert.Equal(t, []any{"α"}, alpha.args)
	assert.Equal(t, []any{"β"}, beta.args)
}

// ── Builder ───────────────────────────────────────────────────────────────────

func TestBuilder_Alias_SharesInstance(t *testing.T) {
	b := container.NewBuilder()
	b.AddClass("Node", newNode)
	b.Define("cache", &container.Definition{Class: "Node"})
	b.Alias("cache", "cacheManager")
	c := b.Build()

	assert.True(t, c.Has("cacheManager"))
	cache, err := c.Get("cache")
	require.NoError(t, err)
	alias, err := c.Get("cacheManager")
	require.NoError(t, err)
	assert.Same(t, cache, alias)
}

func TestBuilder_LaterRegistrationWins(t *testing.T) {
	b := container.NewBuilder()
	b.Instance("primary", "primary")
	b.Instance("secondary", "secondary")

	b.Instance("config", "defined")
	b.Alias("secondary", "config")

	b.Alias("primary", "mailer")
	b.Instance("mailer", "defined")

	assert.True(t, b.Defined("config"))
	c := b.Build()

	config, err := c.Get("config")
	require.NoError(t, err)
	assert.Equal(t, "secondary", config)

	mailer, err := c.Get("mailer")
	require.NoError(t, err)
	assert.Equal(t, "defined", mailer)
}

func TestBuilder_Alias_ToSelfPanics(t *testing.T) {
	assert.Panics(t, func() { container.NewBuilder().Alias("x", "x") })
}

func TestBuilder_Instance(t *testing.T) {
	b := container.NewBuilder()
	cfg := &struct{ Name string }{"genius"}
	b.Instance("config", cfg)

	assert.True(t, b.Defined("config"))
	got, err := b.Build().Get("config")
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}

func TestBuilder_Build_IsolatedFromLaterDefinitions(t *testing.T) {
	b := container.NewBuilder()
	c := b.Build()

	b.Instance("late", 1)

	assert.False(t, c.Has("late"))
}
