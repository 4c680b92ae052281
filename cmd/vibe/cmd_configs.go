package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vibecore/cmd/vibe/ui"
	"vibecore/internal/shaders"
	"vibecore/internal/vibe"
)

var (
	configsOffset   int
	configsLimit    int
	configsSwatches bool
)

// configsCmd enumerates the addressable configuration space
var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "List the addressable background configurations",
	Long: `Lists every addressable configuration: background layout × theme ×
complexity × orb energy. Alert is an overlay and has no address.`,
	Args: cobra.NoArgs,
	RunE: runConfigs,
}

func init() {
	configsCmd.Flags().IntVar(&configsOffset, "offset", 0, "First address to print")
	configsCmd.Flags().IntVar(&configsLimit, "limit", vibe.AddressCount, "Number of addresses to print")
	configsCmd.Flags().BoolVar(&configsSwatches, "swatches", false, "Show colour swatches")
}

func runConfigs(cmd *cobra.Command, args []string) error {
	if configsOffset < 0 || configsOffset >= vibe.AddressCount {
		return fmt.Errorf("offset %d out of range [0,%d)", configsOffset, vibe.AddressCount)
	}
	end := configsOffset + configsLimit
	if end > vibe.AddressCount {
		end = vibe.AddressCount
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ADDR\tBG\tTHEME\tCOMPLEXITY\tENERGY\tSHADER\tCOLORS")
	for i := configsOffset; i < end; i++ {
		c, ok := vibe.AddressAt(i)
		if !ok {
			continue
		}
		sh, _ := shaders.Lookup(shaders.ShaderForVibe(c.Theme, c.BackgroundIndex))
		p := vibe.PaletteFor(c.Theme)
		colors := p.A.Hex() + " " + p.B.Hex()
		if configsSwatches {
			colors = ui.Gradient(p.A, p.B, 12)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			i, c.BackgroundIndex, c.Theme, c.Complexity, c.Energy, sh.Name, colors)
	}
	return w.Flush()
}
