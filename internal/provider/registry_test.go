package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	id string
}

func (s *stubProvider) ID() string { return s.id }

func (s *stubProvider) CompleteWithSystem(_ context.Context, _, _ string) (string, error) {
	return "stub completion from " + s.id, nil
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	t.Run("first registered provider becomes default", func(t *testing.T) {
		r.Register(&stubProvider{id: "alpha"})
		r.Register(&stubProvider{id: "beta"})

		p := r.UsingFor("conv:1")
		require.NotNil(t, p)
		assert.Equal(t, "alpha", p.ID())
	})

	t.Run("nil provider is ignored", func(t *testing.T) {
		r.Register(nil)
		assert.NotNil(t, r.UsingFor("conv:1"))
	})
}

func TestRegistry_ByID(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubProvider{id: "alpha"})

	p, ok := r.ByID("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", p.ID())

	_, ok = r.ByID("missing")
	assert.False(t, ok)
}

func TestRegistry_UsingFor(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubProvider{id: "alpha"})
	r.Register(&stubProvider{id: "beta"})
	r.SetDefault("alpha")
	r.Bind("conv:42", "beta")

	t.Run("bound origin gets its provider", func(t *testing.T) {
		p := r.UsingFor("conv:42")
		require.NotNil(t, p)
		assert.Equal(t, "beta", p.ID())
	})

	t.Run("unbound origin falls back to default", func(t *testing.T) {
		p := r.UsingFor("conv:other")
		require.NotNil(t, p)
		assert.Equal(t, "alpha", p.ID())
	})

	t.Run("binding to an unregistered id falls back to default", func(t *testing.T) {
		r.Bind("conv:43", "gone")
		p := r.UsingFor("conv:43")
		require.NotNil(t, p)
		assert.Equal(t, "alpha", p.ID())
	})

	t.Run("empty registry resolves nil", func(t *testing.T) {
		assert.Nil(t, NewRegistry().UsingFor("conv:1"))
	})
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubProvider{id: "alpha"})
	r.Register(&stubProvider{id: "beta"})
	r.SetDefault("alpha")

	t.Run("configured id wins", func(t *testing.T) {
		p := r.Resolve("beta", "conv:1")
		require.NotNil(t, p)
		assert.Equal(t, "beta", p.ID())
	})

	t.Run("unresolvable configured id falls back to conversation default", func(t *testing.T) {
		p := r.Resolve("does-not-exist", "conv:1")
		require.NotNil(t, p)
		assert.Equal(t, "alpha", p.ID())
	})

	t.Run("empty configured id uses conversation default", func(t *testing.T) {
		r.Bind("conv:9", "beta")
		p := r.Resolve("", "conv:9")
		require.NotNil(t, p)
		assert.Equal(t, "beta", p.ID())
	})
}
