package vibe

import "fmt"

// BackgroundCount is the number of selectable background layouts.
const BackgroundCount = 10

// complexityValues must be strictly increasing in level order; sentiment
// boosters and dampeners compare against it.
var complexityValues = [complexityCount]float64{
	ComplexitySmoothie: 0.0,
	ComplexityFlow:     0.25,
	ComplexityOcean:    0.5,
	ComplexityStorm:    0.75,
	ComplexityPaisley:  1.0,
}

var energyValues = [energyCount]float64{
	EnergyCalm:    0.2,
	EnergyEngaged: 0.55,
	EnergyExcited: 0.9,
}

// Palette is the two-colour gradient of a theme.
type Palette struct {
	A RGB
	B RGB
}

var themePalettes = map[ColorTheme]Palette{
	ThemeTrust:   {A: RGB{0.36, 0.62, 0.90}, B: RGB{0.62, 0.85, 0.96}},
	ThemePassion: {A: RGB{0.91, 0.27, 0.42}, B: RGB{0.98, 0.58, 0.45}},
	ThemeCaution: {A: RGB{0.96, 0.71, 0.26}, B: RGB{0.99, 0.87, 0.55}},
	ThemeGrowth:  {A: RGB{0.40, 0.76, 0.45}, B: RGB{0.75, 0.90, 0.52}},
	ThemeDeep:    {A: RGB{0.25, 0.18, 0.52}, B: RGB{0.47, 0.33, 0.75}},
	ThemeAlert:   {A: RGB{0.86, 0.16, 0.16}, B: RGB{0.55, 0.05, 0.10}},
}

// PaletteFor returns the gradient of a theme.
func PaletteFor(t ColorTheme) Palette {
	mustTheme(t)
	return themePalettes[t]
}

// Preset is the visual triple an AppState snaps to.
type Preset struct {
	Theme      ColorTheme
	Complexity Complexity
	Energy     OrbEnergy
}

var appStatePresets = map[AppState]Preset{
	AppWelcome:         {ThemeTrust, ComplexitySmoothie, EnergyCalm},
	AppOnboarding:      {ThemeTrust, ComplexityFlow, EnergyCalm},
	AppCoachIntro:      {ThemeDeep, ComplexitySmoothie, EnergyEngaged},
	AppInterviewWarmup: {ThemeTrust, ComplexityFlow, EnergyEngaged},
	AppInterviewDeep:   {ThemeDeep, ComplexityOcean, EnergyEngaged},
	AppProfileBuild:    {ThemeGrowth, ComplexityStorm, EnergyExcited},
	AppMatchSearch:     {ThemeCaution, ComplexityStorm, EnergyEngaged},
	AppMatchReveal:     {ThemePassion, ComplexityPaisley, EnergyExcited},
	AppCoach:           {ThemeGrowth, ComplexityFlow, EnergyCalm},
	AppChat:            {ThemePassion, ComplexityOcean, EnergyEngaged},
}

// PresetFor returns the preset of an app state.
func PresetFor(s AppState) Preset {
	p, ok := appStatePresets[s]
	if !ok {
		panic(fmt.Sprintf("vibe: invalid AppState %d", int(s)))
	}
	return p
}

// Reward is what a graded answer does to the vibe: complexity climbs by
// ComplexityStep levels and energy is raised to at least EnergyFloor.
type Reward struct {
	ComplexityStep int
	EnergyFloor    OrbEnergy
}

// Rewards are non-decreasing in quality on both fields.
var responseRewards = [responseQualityCount]Reward{
	ResponseBrief:      {ComplexityStep: 0, EnergyFloor: EnergyCalm},
	ResponseThoughtful: {ComplexityStep: 1, EnergyFloor: EnergyEngaged},
	ResponseProfound:   {ComplexityStep: 2, EnergyFloor: EnergyExcited},
}

// RewardFor returns the reward of a response quality.
func RewardFor(q ResponseQuality) Reward {
	if !q.IsValid() {
		panic(fmt.Sprintf("vibe: invalid ResponseQuality %d", int(q)))
	}
	return responseRewards[q]
}

// coverageBand covers [Lower, Upper); the last band also includes 100.
type coverageBand struct {
	Lower float64
	Upper float64
	Theme ColorTheme
}

// The interview arc: open with trust, go deep, grow, get careful about
// specifics, land on passion.
var coverageBands = []coverageBand{
	{0, 20, ThemeTrust},
	{20, 40, ThemeDeep},
	{40, 60, ThemeGrowth},
	{60, 80, ThemeCaution},
	{80, 100, ThemePassion},
}

// ThemeForCoverage maps a coverage percentage to its theme band. Input is
// clamped to [0,100] first.
func ThemeForCoverage(pct float64) ColorTheme {
	pct = clamp(pct, 0, 100)
	for _, b := range coverageBands {
		if pct >= b.Lower && pct < b.Upper {
			return b.Theme
		}
	}
	return coverageBands[len(coverageBands)-1].Theme
}

// NearestComplexity quantises a value in [0,1] to the closest level. Exact
// midpoints round down.
func NearestComplexity(v float64) Complexity {
	v = clamp01(v)
	best := ComplexitySmoothie
	bestDist := 2.0
	for _, c := range AllComplexities() {
		d := v - c.Value()
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func init() {
	for i := 1; i < len(complexityValues); i++ {
		if complexityValues[i] <= complexityValues[i-1] {
			panic(fmt.Sprintf("vibe: complexity values not strictly increasing at %s", Complexity(i)))
		}
	}
	for _, s := range AllAppStates() {
		p, ok := appStatePresets[s]
		if !ok {
			panic(fmt.Sprintf("vibe: no preset for app state %s", s))
		}
		if !p.Theme.IsValid() || !p.Complexity.IsValid() || !p.Energy.IsValid() {
			panic(fmt.Sprintf("vibe: preset for %s out of domain", s))
		}
	}
	for _, t := range AllThemes() {
		if _, ok := themePalettes[t]; !ok {
			panic(fmt.Sprintf("vibe: no palette for theme %s", t))
		}
	}
	for i := 1; i < len(responseRewards); i++ {
		prev, cur := responseRewards[i-1], responseRewards[i]
		if cur.ComplexityStep < prev.ComplexityStep || cur.EnergyFloor < prev.EnergyFloor {
			panic(fmt.Sprintf("vibe: reward for %s lower than %s", ResponseQuality(i), ResponseQuality(i-1)))
		}
	}
	for i := 1; i < len(coverageBands); i++ {
		if coverageBands[i].Lower != coverageBands[i-1].Upper {
			panic("vibe: coverage bands are not contiguous")
		}
	}
	if coverageBands[0].Lower != 0 || coverageBands[len(coverageBands)-1].Upper != 100 {
		panic("vibe: coverage bands do not span [0,100]")
	}
}

func mustTheme(t ColorTheme) {
	if !t.IsValid() {
		panic(fmt.Sprintf("vibe: invalid ColorTheme %d", int(t)))
	}
}

func mustComplexity(c Complexity) {
	if !c.IsValid() {
		panic(fmt.Sprintf("vibe: invalid Complexity %d", int(c)))
	}
}

func mustEnergy(e OrbEnergy) {
	if !e.IsValid() {
		panic(fmt.Sprintf("vibe: invalid OrbEnergy %d", int(e)))
	}
}
