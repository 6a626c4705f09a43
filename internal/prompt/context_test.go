package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveContext_Defaults(t *testing.T) {
	ctx := ResolveContext("", "", "")

	assert.Equal(t, DefaultLevel, ctx.Level)
	assert.Equal(t, DefaultDataDepth, ctx.DataDepth)
	assert.Equal(t, DefaultAudience, ctx.Audience)
	assert.Equal(t, DefaultPerspective, ctx.Perspective)
}

func TestResolveContext_KeepsProvidedValues(t *testing.T) {
	ctx := ResolveContext("Pro", "advanced", "front_office")

	assert.Equal(t, "Pro", ctx.Level)
	assert.Equal(t, "advanced", ctx.DataDepth)
	assert.Equal(t, "front_office", ctx.Audience)
}

func TestResolveContext_IllegalValuesPassThrough(t *testing.T) {
	// This stage performs no legality validation by contract.
	ctx := ResolveContext("Beer League", "???", "aliens")

	assert.Equal(t, "Beer League", ctx.Level)
	assert.Equal(t, "???", ctx.DataDepth)
	assert.Equal(t, "aliens", ctx.Audience)
}

func TestResolveContext_WhitespaceCountsAsUnset(t *testing.T) {
	ctx := ResolveContext("  ", "\t", "")

	assert.Equal(t, DefaultLevel, ctx.Level)
	assert.Equal(t, DefaultDataDepth, ctx.DataDepth)
	assert.Equal(t, DefaultAudience, ctx.Audience)
}
