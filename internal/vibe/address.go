package vibe

// addressableThemes excludes ThemeAlert, which renders as an overlay.
var addressableThemes = []ColorTheme{ThemeTrust, ThemePassion, ThemeCaution, ThemeGrowth, ThemeDeep}

// AddressCount is the size of the addressable configuration space:
// backgrounds × themes (without alert) × complexities × energies.
var AddressCount = BackgroundCount * len(addressableThemes) * int(complexityCount) * int(energyCount)

// Address maps a state onto its configuration index in [0, AddressCount).
// Alert states have no address.
func Address(s State) (int, bool) {
	ti := -1
	for i, t := range addressableThemes {
		if t == s.ColorTheme {
			ti = i
			break
		}
	}
	if ti < 0 || !s.Complexity.IsValid() || !s.OrbEnergy.IsValid() {
		return 0, false
	}
	bg := NormalizeBackground(s.BackgroundIndex)
	idx := bg
	idx = idx*len(addressableThemes) + ti
	idx = idx*int(complexityCount) + int(s.Complexity)
	idx = idx*int(energyCount) + int(s.OrbEnergy)
	return idx, true
}

// Configuration is one point of the addressable space.
type Configuration struct {
	BackgroundIndex int
	Theme           ColorTheme
	Complexity      Complexity
	Energy          OrbEnergy
}

// AddressAt inverts Address.
func AddressAt(idx int) (Configuration, bool) {
	if idx < 0 || idx >= AddressCount {
		return Configuration{}, false
	}
	e := idx % int(energyCount)
	idx /= int(energyCount)
	c := idx % int(complexityCount)
	idx /= int(complexityCount)
	t := idx % len(addressableThemes)
	bg := idx / len(addressableThemes)
	return Configuration{
		BackgroundIndex: bg,
		Theme:           addressableThemes[t],
		Complexity:      Complexity(c),
		Energy:          OrbEnergy(e),
	}, true
}

// NormalizeBackground reduces any integer into [0, BackgroundCount).
func NormalizeBackground(i int) int {
	i %= BackgroundCount
	if i < 0 {
		i += BackgroundCount
	}
	return i
}
