package sentiment

import "vibecore/internal/vibe"

// themeKeywords are matched as whole lowercase words or phrases. Phrases use
// single spaces; hyphens in the input are treated as spaces.
var themeKeywords = map[vibe.ColorTheme][]string{
	vibe.ThemeTrust: {
		"trust", "honest", "honesty", "loyal", "loyalty", "reliable", "depend",
		"safe", "comfortable", "friend", "friends", "friendship", "family",
		"kind", "kindness", "respect", "support",
	},
	vibe.ThemePassion: {
		"love", "romance", "romantic", "passion", "passionate", "desire",
		"attraction", "attracted", "kiss", "date", "dating", "chemistry",
		"crush", "flirt", "flirting", "intimacy", "intimate", "spark",
	},
	vibe.ThemeCaution: {
		"dealbreaker", "deal breaker", "red flag", "red flags", "worry",
		"worried", "concern", "careful", "mistake", "regret", "jealous",
		"jealousy", "boundary", "boundaries", "conflict", "argue", "argument",
	},
	vibe.ThemeGrowth: {
		"grow", "growth", "goal", "goals", "future", "learn", "learning",
		"change", "dream", "dreams", "ambition", "career", "improve", "plan",
		"plans", "challenge",
	},
	vibe.ThemeDeep: {
		"afraid", "fear", "fears", "scared", "vulnerable", "meaning", "purpose",
		"soul", "lonely", "loneliness", "childhood", "lost", "grief", "believe",
		"deepest", "secret",
	},
	vibe.ThemeAlert: {
		"abuse", "abused", "abusive", "violence", "violent", "hurt yourself",
		"self harm", "suicide", "suicidal", "assault", "threatened", "unsafe",
		"danger", "stalk", "stalking",
	},
}

// themePriority breaks score ties: earlier wins. Safety-relevant themes rank
// first so a mixed question never hides an alert.
var themePriority = []vibe.ColorTheme{
	vibe.ThemeAlert,
	vibe.ThemeDeep,
	vibe.ThemePassion,
	vibe.ThemeCaution,
	vibe.ThemeGrowth,
	vibe.ThemeTrust,
}

// themeBase is the complexity a theme starts from before intensity words.
var themeBase = map[vibe.ColorTheme]vibe.Complexity{
	vibe.ThemeTrust:   vibe.ComplexityFlow,
	vibe.ThemePassion: vibe.ComplexityStorm,
	vibe.ThemeCaution: vibe.ComplexityFlow,
	vibe.ThemeGrowth:  vibe.ComplexityOcean,
	vibe.ThemeDeep:    vibe.ComplexityOcean,
	vibe.ThemeAlert:   vibe.ComplexityStorm,
}

var boosterWords = []string{
	"really", "very", "most", "deeply", "truly", "extremely", "always",
	"never", "absolutely", "ever", "so", "completely", "intensely",
}

var dampenerWords = []string{
	"maybe", "little", "bit", "slightly", "somewhat", "sort of", "casual",
	"casually", "quick", "simple", "light", "lightly",
}
