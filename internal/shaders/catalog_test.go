package shaders

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibecore/internal/vibe"
)

func TestGroups_NonEmptyAndInRange(t *testing.T) {
	for _, th := range vibe.AllThemes() {
		g := Group(th)
		require.NotEmpty(t, g, th.String())
		for _, id := range g {
			assert.GreaterOrEqual(t, id, 0)
			assert.LessOrEqual(t, id, MaxID)
			_, ok := Lookup(id)
			assert.True(t, ok)
		}
	}
}

func TestShaderForVibe_PeriodicInIndex(t *testing.T) {
	for _, th := range vibe.AllThemes() {
		n := len(Group(th))
		for i := -2 * n; i < 2*n; i++ {
			want := ShaderForVibe(th, i)
			for _, k := range []int{-3, -1, 1, 4} {
				assert.Equal(t, want, ShaderForVibe(th, i+k*n), "%s i=%d k=%d", th, i, k)
			}
			assert.True(t, InGroup(th, want), "%s i=%d", th, i)
		}
	}
}

func TestShaderForVibe_NegativeIndex(t *testing.T) {
	g := Group(vibe.ThemeTrust)
	assert.Equal(t, g[len(g)-1], ShaderForVibe(vibe.ThemeTrust, -1))
	assert.True(t, InGroup(vibe.ThemeTrust, ShaderForVibe(vibe.ThemeTrust, -1001)))
}

func TestNextShaderInVibeGroup(t *testing.T) {
	for _, th := range vibe.AllThemes() {
		g := Group(th)
		for i := 0; i < len(g)-1; i++ {
			assert.Equal(t, g[i+1], NextShaderInVibeGroup(th, g[i]))
		}
		assert.Equal(t, g[0], NextShaderInVibeGroup(th, g[len(g)-1]), "wraps")
		assert.Equal(t, g[0], NextShaderInVibeGroup(th, -1), "absent id")
	}
}

func TestRandomShaderForVibe_StaysInGroup(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		id := RandomShaderForVibe(vibe.ThemeDeep, rng)
		require.True(t, InGroup(vibe.ThemeDeep, id))
		seen[id] = true
	}
	assert.Len(t, seen, len(Group(vibe.ThemeDeep)), "every member is reachable")
	assert.True(t, InGroup(vibe.ThemeGrowth, RandomShaderForVibe(vibe.ThemeGrowth, nil)))
}

func TestGroup_ReturnsCopy(t *testing.T) {
	g := Group(vibe.ThemePassion)
	g[0] = 99
	assert.NotEqual(t, 99, Group(vibe.ThemePassion)[0])
}
