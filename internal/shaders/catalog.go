// Package shaders is the catalogue of decorative background shaders and the
// fixed grouping of shader ids by colour theme.
package shaders

import (
	"fmt"
	"math/rand"

	"vibecore/internal/vibe"
)

// MaxID is the highest shader id shipped with the app.
const MaxID = 18

// Shader describes one background program. Only the id and name matter to
// the core; the GLSL lives with the renderer.
type Shader struct {
	ID   int
	Name string
}

var catalog = [MaxID + 1]Shader{
	{0, "silk"},
	{1, "ember"},
	{2, "static"},
	{3, "lagoon"},
	{4, "canopy"},
	{5, "bloom"},
	{6, "abyss"},
	{7, "cloudline"},
	{8, "prism"},
	{9, "heartbeat"},
	{10, "sprout"},
	{11, "nebula"},
	{12, "harbor"},
	{13, "meadow"},
	{14, "velvet"},
	{15, "flare"},
	{16, "undertow"},
	{17, "aurora"},
	{18, "midnight"},
}

// vibeGroups assigns every theme a non-empty ordered group of shader ids.
var vibeGroups = map[vibe.ColorTheme][]int{
	vibe.ThemeTrust:   {0, 3, 7, 12},
	vibe.ThemePassion: {1, 5, 9, 14},
	vibe.ThemeCaution: {2, 8, 15},
	vibe.ThemeGrowth:  {4, 10, 13, 17},
	vibe.ThemeDeep:    {6, 11, 16, 18},
	vibe.ThemeAlert:   {15, 2},
}

func init() {
	for _, t := range vibe.AllThemes() {
		g := vibeGroups[t]
		if len(g) == 0 {
			panic(fmt.Sprintf("shaders: theme %s has no shader group", t))
		}
		for _, id := range g {
			if id < 0 || id > MaxID {
				panic(fmt.Sprintf("shaders: theme %s references unknown shader %d", t, id))
			}
		}
	}
}

// Lookup returns the shader with the given id.
func Lookup(id int) (Shader, bool) {
	if id < 0 || id > MaxID {
		return Shader{}, false
	}
	return catalog[id], true
}

// Group returns a copy of the theme's shader ids.
func Group(t vibe.ColorTheme) []int {
	g := group(t)
	out := make([]int, len(g))
	copy(out, g)
	return out
}

// ShaderForVibe picks the group member at index. Any integer is reduced into
// range, negative ones included, so ShaderForVibe(t, i) equals
// ShaderForVibe(t, i+k*len(group)) for every k.
func ShaderForVibe(t vibe.ColorTheme, index int) int {
	g := group(t)
	i := index % len(g)
	if i < 0 {
		i += len(g)
	}
	return g[i]
}

// RandomShaderForVibe picks a group member uniformly. A nil rng uses the
// global source.
func RandomShaderForVibe(t vibe.ColorTheme, rng *rand.Rand) int {
	g := group(t)
	if rng == nil {
		return g[rand.Intn(len(g))]
	}
	return g[rng.Intn(len(g))]
}

// NextShaderInVibeGroup returns the member after current, wrapping at the
// end. An id that is not in the group (-1 for "none") maps to the first
// member.
func NextShaderInVibeGroup(t vibe.ColorTheme, current int) int {
	g := group(t)
	for i, id := range g {
		if id == current {
			return g[(i+1)%len(g)]
		}
	}
	return g[0]
}

// InGroup reports whether id belongs to the theme's group.
func InGroup(t vibe.ColorTheme, id int) bool {
	for _, m := range group(t) {
		if m == id {
			return true
		}
	}
	return false
}

func group(t vibe.ColorTheme) []int {
	g, ok := vibeGroups[t]
	if !ok {
		panic(fmt.Sprintf("shaders: invalid ColorTheme %d", int(t)))
	}
	return g
}
