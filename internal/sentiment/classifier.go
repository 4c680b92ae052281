// Package sentiment derives a recommended vibe from free text, typically an
// interview question, by scoring theme keyword buckets.
package sentiment

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"

	"vibecore/internal/shaders"
	"vibecore/internal/vibe"
)

// Result is the recommended vibe for a piece of text. Every field is always
// set.
type Result struct {
	Theme           vibe.ColorTheme
	Complexity      vibe.Complexity
	ComplexityValue float64
	ShaderID        int
	Confidence      float64
}

// NeutralConfidence is the confidence of the neutral result.
const NeutralConfidence = 0.5

// Neutral is returned for empty input and for text that matches no theme.
func Neutral() Result {
	return Result{
		Theme:           vibe.ThemeTrust,
		Complexity:      vibe.ComplexityFlow,
		ComplexityValue: vibe.ComplexityFlow.Value(),
		ShaderID:        shaders.ShaderForVibe(vibe.ThemeTrust, 0),
		Confidence:      NeutralConfidence,
	}
}

// Options tunes a Classifier.
type Options struct {
	// BoosterDelta is added to the complexity value per booster word.
	BoosterDelta float64
	// DampenerDelta is subtracted per dampener word.
	DampenerDelta float64
	// Seed seeds shader selection; 0 means time-based.
	Seed   int64
	Logger *zap.Logger
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{BoosterDelta: 0.15, DampenerDelta: 0.15}
}

// Classifier scores text against the theme keyword buckets.
type Classifier struct {
	opts   Options
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewClassifier builds a classifier. Zero deltas fall back to the defaults.
func NewClassifier(opts Options) *Classifier {
	def := DefaultOptions()
	if opts.BoosterDelta <= 0 {
		opts.BoosterDelta = def.BoosterDelta
	}
	if opts.DampenerDelta <= 0 {
		opts.DampenerDelta = def.DampenerDelta
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		opts:   opts,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

var defaultClassifier = NewClassifier(DefaultOptions())

// Analyze classifies text with the package default classifier, choosing a
// random shader from the winning theme's group.
func Analyze(text string) Result {
	return defaultClassifier.Analyze(text)
}

// AnalyzePtr is Analyze for optional text; nil behaves like "".
func AnalyzePtr(text *string) Result {
	if text == nil {
		return Neutral()
	}
	return Analyze(*text)
}

// AnalyzeWithIndex classifies text with the package default classifier and
// selects the shader at index within the winning group.
func AnalyzeWithIndex(text string, index int) Result {
	return defaultClassifier.AnalyzeWithIndex(text, index)
}

// Analyze classifies text, choosing a random shader from the winning group.
func (c *Classifier) Analyze(text string) Result {
	r, ok := c.score(text)
	if !ok {
		return r
	}
	c.mu.Lock()
	r.ShaderID = shaders.RandomShaderForVibe(r.Theme, c.rng)
	c.mu.Unlock()
	return r
}

// AnalyzeWithIndex classifies text and picks the group member at index.
func (c *Classifier) AnalyzeWithIndex(text string, index int) Result {
	r, ok := c.score(text)
	if !ok {
		return r
	}
	r.ShaderID = shaders.ShaderForVibe(r.Theme, index)
	return r
}

// score fills everything but ShaderID. ok is false when the neutral result
// was returned.
func (c *Classifier) score(text string) (Result, bool) {
	norm := normalize(text)
	if len(norm) == 0 {
		return Neutral(), false
	}

	scores := make(map[vibe.ColorTheme]int, len(themeKeywords))
	total := 0
	for theme, words := range themeKeywords {
		n := countMatches(norm, words)
		scores[theme] = n
		total += n
	}
	if total == 0 {
		c.logger.Debug("no theme keywords matched", zap.Int("length", len(text)))
		return Neutral(), false
	}

	winner := themePriority[0]
	top := -1
	for _, theme := range themePriority {
		if scores[theme] > top {
			winner, top = theme, scores[theme]
		}
	}

	boosters := countMatches(norm, boosterWords)
	dampeners := countMatches(norm, dampenerWords)
	value := themeBase[winner].Value() +
		float64(boosters)*c.opts.BoosterDelta -
		float64(dampeners)*c.opts.DampenerDelta
	value = clamp01(value)

	strength := float64(top)
	if strength > 3 {
		strength = 3
	}
	confidence := NeutralConfidence + 0.5*(float64(top)/float64(total))*(strength/3)

	r := Result{
		Theme:           winner,
		Complexity:      vibe.NearestComplexity(value),
		ComplexityValue: value,
		Confidence:      clamp01(confidence),
	}
	c.logger.Debug("classified text",
		zap.Stringer("theme", r.Theme),
		zap.Int("score", top),
		zap.Int("total", total),
		zap.Int("boosters", boosters),
		zap.Int("dampeners", dampeners),
		zap.Float64("confidence", r.Confidence))
	return r, true
}

// normalize lowercases text and splits it into words. Anything that is not
// a letter, digit or apostrophe separates words, so "self-harm" becomes
// "self", "harm".
func normalize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// countMatches counts every whole-word occurrence of every term. Terms may be
// multi-word phrases.
func countMatches(words []string, terms []string) int {
	n := 0
	for _, term := range terms {
		parts := strings.Fields(term)
		for i := 0; i+len(parts) <= len(words); i++ {
			if matchAt(words, i, parts) {
				n++
			}
		}
	}
	return n
}

func matchAt(words []string, i int, parts []string) bool {
	for j, p := range parts {
		if words[i+j] != p {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
