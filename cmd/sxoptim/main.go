// Command sxoptim drives the SX circuit twin from the terminal: plant-mode
// simulation, extractant optimization against a target stripping ratio, and
// McCabe-Thiele diagram export.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	sxoptim "github.com/miladjahani/Sxoptim"
	"github.com/miladjahani/Sxoptim/load"
	"github.com/miladjahani/Sxoptim/mccabe"
	"github.com/miladjahani/Sxoptim/types"
)

var (
	flagVerbose   bool
	flagFlowsheet string

	flagScenario string
	feed         types.FeedSpec
	flagTarget   float64
	flagOut      string
	flagAddr     string
)

func main() {
	root := &cobra.Command{
		Use:           "sxoptim",
		Short:         "Copper solvent-extraction circuit digital twin",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelInfo
			if flagVerbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagFlowsheet, "flowsheet", "", "YAML file with extra scenario definitions")

	for _, c := range []*cobra.Command{simulateCmd(), optimizeCmd(), chartCmd(), serveCmd()} {
		c.Flags().StringVarP(&flagScenario, "scenario", "s", "A", "scenario identifier (A-R)")
		c.Flags().Float64Var(&feed.PLSCu, "pls-cu", 2.0, "PLS copper, g/L")
		c.Flags().Float64Var(&feed.PLSFlow, "pls-flow", 100, "PLS flow, m3/h")
		c.Flags().Float64Var(&feed.ElectrolyteCu, "electrolyte-cu", 35, "lean electrolyte copper, g/L")
		c.Flags().Float64Var(&feed.ElectrolyteFlow, "electrolyte-flow", 0, "strip liquor flow, m3/h (0 derives from O/A)")
		c.Flags().Float64Var(&feed.MixerEffExt, "eff-ext", 0, "extraction mixer efficiency (0 uses default)")
		c.Flags().Float64Var(&feed.MixerEffStrip, "eff-strip", 0, "stripping mixer efficiency (0 uses default)")
		root.AddCommand(c)
	}

	if err := root.Execute(); err != nil {
		slog.Error("sxoptim failed", "err", err)
		os.Exit(1)
	}
}

// newPlant builds the facade, merging a flowsheet file when one is given.
func newPlant() (*sxoptim.Plant, error) {
	p := sxoptim.NewPlant()
	if flagFlowsheet != "" {
		defs, err := load.File(flagFlowsheet)
		if err != nil {
			return nil, err
		}
		p.Catalog = load.Merge(p.Catalog, defs)
	}
	return p, nil
}

func simulateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "simulate",
		Short: "Plant mode: solve the circuit at a fixed extractant concentration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			plant, err := newPlant()
			if err != nil {
				return err
			}
			prof, err := plant.SimulatePlant(types.ScenarioID(flagScenario), feed)
			if err != nil {
				return err
			}
			printProfile(prof)
			recs, err := plant.Recommend(types.ScenarioID(flagScenario), feed)
			if err == nil {
				for _, r := range recs {
					fmt.Printf("recommendation: %s\n", r.Message)
				}
			}
			return nil
		},
	}
	c.Flags().Float64Var(&feed.ExtractantVV, "vv", 20, "extractant concentration, v/v%")
	return c
}

func optimizeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "optimize",
		Short: "Optimization mode: find the extractant concentration for a target stripping ratio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			plant, err := newPlant()
			if err != nil {
				return err
			}
			vv, prof, err := plant.OptimizeForTarget(context.Background(), types.ScenarioID(flagScenario), feed, flagTarget)
			if err != nil {
				return err
			}
			fmt.Printf("optimal extractant   %.2f v/v%%\n", vv)
			printProfile(prof)
			return nil
		},
	}
	c.Flags().Float64VarP(&flagTarget, "target", "t", 0.85, "target stripping ratio (0,1)")
	return c
}

func chartCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "chart",
		Short: "Export the McCabe-Thiele diagram (.html or .png by extension)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			plant, err := newPlant()
			if err != nil {
				return err
			}
			prof, err := plant.SimulatePlant(types.ScenarioID(flagScenario), feed)
			if err != nil {
				return err
			}
			proj, err := plant.ProjectDiagram(prof)
			if err != nil {
				return err
			}
			switch strings.ToLower(filepath.Ext(flagOut)) {
			case ".png":
				return proj.SavePNG(flagOut, fmt.Sprintf("McCabe-Thiele, scenario %s", flagScenario))
			case ".html":
				f, err := os.Create(flagOut)
				if err != nil {
					return err
				}
				defer f.Close()
				chart := &mccabe.Chart{Projection: proj, Scenario: flagScenario}
				return chart.Render(f)
			default:
				return fmt.Errorf("unsupported chart format %q: use .html or .png", flagOut)
			}
		},
	}
	c.Flags().Float64Var(&feed.ExtractantVV, "vv", 20, "extractant concentration, v/v%")
	c.Flags().StringVarP(&flagOut, "out", "o", "mccabe.html", "output file")
	return c
}

func serveCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the McCabe-Thiele diagram over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			plant, err := newPlant()
			if err != nil {
				return err
			}
			prof, err := plant.SimulatePlant(types.ScenarioID(flagScenario), feed)
			if err != nil {
				return err
			}
			proj, err := plant.ProjectDiagram(prof)
			if err != nil {
				return err
			}
			chart := &mccabe.Chart{Projection: proj, Scenario: flagScenario}
			http.HandleFunc("/", chart.Handler)
			slog.Info("serving diagram", "addr", flagAddr, "scenario", flagScenario)
			return http.ListenAndServe(flagAddr, nil)
		},
	}
	c.Flags().Float64Var(&feed.ExtractantVV, "vv", 20, "extractant concentration, v/v%")
	c.Flags().StringVar(&flagAddr, "addr", "localhost:8089", "listen address")
	return c
}

func printProfile(p *types.StageProfile) {
	fmt.Printf("scenario             %s\n", p.Scenario)
	fmt.Printf("converged            %v (%d sweeps)\n", p.Converged, p.Sweeps)
	fmt.Printf("max loading (AML)    %.2f g/L\n", p.MaxLoading)
	fmt.Printf("loaded organic (ML)  %.2f g/L\n", p.LoadedOrganic)
	fmt.Printf("stripped organic     %.2f g/L\n", p.StrippedOrganic)
	fmt.Printf("raffinate            %.3f g/L\n", p.RaffinateCu)
	fmt.Printf("rich electrolyte     %.2f g/L\n", p.RichElectrolyte)
	fmt.Printf("stripping ratio      %.2f %%\n", p.StrippingRatio*100)
	fmt.Printf("extraction recovery  %.2f %%\n", p.ExtractionRecovery*100)
	fmt.Printf("strip recovery       %.2f %%\n", p.StripRecovery*100)
	fmt.Printf("net transfer         %.3f g/L per v/v%%\n", p.NetTransfer)
	for _, st := range p.Extraction {
		fmt.Printf("  E%-2d aq %.3f -> %.3f  org %.3f -> %.3f\n",
			st.Index+1, st.AqueousIn.Copper, st.AqueousOut.Copper, st.OrganicIn.Copper, st.OrganicOut.Copper)
	}
	for _, st := range p.Stripping {
		fmt.Printf("  S%-2d org %.3f -> %.3f  aq %.3f -> %.3f\n",
			st.Index+1, st.OrganicIn.Copper, st.OrganicOut.Copper, st.AqueousIn.Copper, st.AqueousOut.Copper)
	}
}
