package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vibecore/cmd/vibe/ui"
	"vibecore/internal/logging"
	"vibecore/internal/sentiment"
)

var (
	analyzeIndex      int
	analyzeBackground int
	analyzeJSON       bool
)

// analyzeCmd classifies text into a recommended vibe
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Classify a question into a recommended vibe",
	Long: `Scores the text against the theme keyword buckets and prints the
recommended theme, complexity, shader and confidence.

Example:
  vibe analyze "What are you most afraid of?"
  vibe analyze --index 2 --json "Tell me about love and romance"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeIndex, "index", -1, "Pick the shader by index within the theme group (default: random)")
	analyzeCmd.Flags().IntVar(&analyzeBackground, "background", 0, "Background layout index")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the render config as JSON")
}

// analyzeOutput is the JSON shape of an analysis.
type analyzeOutput struct {
	Text            string  `json:"text"`
	Theme           string  `json:"theme"`
	Complexity      string  `json:"complexity"`
	ComplexityValue float64 `json:"complexity_value"`
	ShaderID        int     `json:"shader_id"`
	ShaderName      string  `json:"shader_name"`
	Confidence      float64 `json:"confidence"`
	ColorA          string  `json:"color_a"`
	ColorB          string  `json:"color_b"`
	BackgroundIndex int     `json:"background_index"`
	Address         int     `json:"address"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := loggers.Get(logging.CategorySentiment)
	opts := cfg.SentimentOptions()
	opts.Logger = log
	classifier := sentiment.NewClassifier(opts)

	text := strings.Join(args, " ")
	var r sentiment.Result
	if analyzeIndex >= 0 {
		r = classifier.AnalyzeWithIndex(text, analyzeIndex)
	} else {
		r = classifier.Analyze(text)
	}
	rc := sentiment.ToRenderConfig(r, analyzeBackground)
	log.Debug("analyzed", zap.String("theme", r.Theme.String()), zap.Float64("confidence", r.Confidence))

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(analyzeOutput{
			Text:            text,
			Theme:           r.Theme.String(),
			Complexity:      r.Complexity.String(),
			ComplexityValue: r.ComplexityValue,
			ShaderID:        r.ShaderID,
			ShaderName:      rc.ShaderName,
			Confidence:      r.Confidence,
			ColorA:          rc.ColorA.Hex(),
			ColorB:          rc.ColorB.Hex(),
			BackgroundIndex: rc.BackgroundIndex,
			Address:         rc.Address,
		})
	}

	fmt.Fprintln(out, ui.DefaultStyles().Result(text, r, rc))
	return nil
}
