package message

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestChain_PlainText(t *testing.T) {
	t.Run("concatenates plain segments in order", func(t *testing.T) {
		c := Chain{Plain("hello "), At("u1"), Plain("world")}
		assert.Equal(t, "hello world", c.PlainText())
	})

	t.Run("empty for chain without plain segments", func(t *testing.T) {
		c := Chain{At("u1"), Image("pic.png")}
		assert.Equal(t, "", c.PlainText())
	})

	t.Run("empty for nil chain", func(t *testing.T) {
		var c Chain
		assert.Equal(t, "", c.PlainText())
	})
}

func TestChain_HasPlainText(t *testing.T) {
	assert.True(t, Chain{Plain("hi")}.HasPlainText())
	assert.False(t, Chain{Plain("   \n\t")}.HasPlainText())
	assert.False(t, Chain{Image("a.png")}.HasPlainText())
	assert.False(t, Chain{}.HasPlainText())
}

func TestChain_ReplacePlainText(t *testing.T) {
	t.Run("replaces single plain segment in place", func(t *testing.T) {
		c := Chain{Plain("hello world"), At("u1")}
		got := c.ReplacePlainText("Hello, World!")
		want := Chain{Plain("Hello, World!"), At("u1")}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("chain mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("collapses multiple plain segments at first position", func(t *testing.T) {
		c := Chain{At("u1"), Plain("a"), Image("x.png"), Plain("b")}
		got := c.ReplacePlainText("ab!")
		want := Chain{At("u1"), Plain("ab!"), Image("x.png")}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("chain mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("prepends when chain has no plain segment", func(t *testing.T) {
		c := Chain{At("u1"), Image("x.png")}
		got := c.ReplacePlainText("note")
		want := Chain{Plain("note"), At("u1"), Image("x.png")}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("chain mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		c := Chain{Plain("original"), At("u1")}
		_ = c.ReplacePlainText("changed")
		assert.Equal(t, "original", c[0].Text)
	})
}

func TestChain_Clone(t *testing.T) {
	c := Chain{Plain("a"), At("u1")}
	clone := c.Clone()
	clone[0].Text = "b"
	assert.Equal(t, "a", c[0].Text)

	var nilChain Chain
	assert.Nil(t, nilChain.Clone())
}
