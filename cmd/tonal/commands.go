package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-tonal/algorithms/hcdf"
	"github.com/RyanBlaney/sonido-tonal/algorithms/tis"
	"github.com/RyanBlaney/sonido-tonal/catalogue"
	"github.com/RyanBlaney/sonido-tonal/config"
	"github.com/RyanBlaney/sonido-tonal/dataset"
	"github.com/RyanBlaney/sonido-tonal/features"
	"github.com/RyanBlaney/sonido-tonal/logging"
)

type rootOptions struct {
	cfgFile string
	verbose bool
	output  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "tonal",
		Short:        "tonal - harmonic feature extraction from chroma",
		Long:         "Extracts tonal complexity, tonal interval space and harmonic change features from per-frame chroma tables.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}

			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			if opts.verbose {
				level = logging.DebugLevel
			}
			logger := logging.NewZerologLogger(cmd.ErrOrStderr(), cfg.LogFormat == "console")
			logger.SetLevel(level)
			logging.SetGlobalLogger(logger)

			cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: built-in settings)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "-", "output CSV file, - for stdout")

	root.AddCommand(newExtractCmd(opts))
	root.AddCommand(newSegmentCmd(opts))
	root.AddCommand(newHCDFCmd(opts))
	root.AddCommand(newPipelinesCmd())
	root.AddCommand(newDatasetsCmd())

	return root
}

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "extract [chroma csv...]",
		Short: "Extract catalogue pipelines at every configured resolution",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			data, err := dataset.ReadChromaFiles(args...)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				names = append(catalogue.NamesOf(catalogue.Segmented), catalogue.NamesOf(catalogue.Resampled)...)
			}

			runner := catalogue.NewRunner(catalogue.Options{
				HCDF:   cfg.HCDFParams(),
				Suffix: cfg.GroupSuffix,
			}, cfg.Workers)

			out, err := runner.Run(cmd.Context(), data, names, cfg.Resolutions)
			if err != nil {
				return err
			}
			return writeTable(cmd, opts.output, out)
		},
	}

	cmd.Flags().StringSliceVarP(&names, "pipelines", "p", nil, "pipelines to run (default: all segmented and resolution pipelines)")
	return cmd
}

func newSegmentCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "segment [chroma csv...]",
		Short: "Sum chroma between harmonic changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			data, err := dataset.ReadChromaFiles(args...)
			if err != nil {
				return err
			}
			out, err := features.NewHCDFSegmentation(cfg.HCDFParams()).Run(data)
			if err != nil {
				return err
			}
			return writeTable(cmd, opts.output, out)
		},
	}
}

func newHCDFCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hcdf [chroma csv...]",
		Short: "Compute the harmonic change detection function of every frame",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			data, err := dataset.ReadChromaFiles(args...)
			if err != nil {
				return err
			}
			out, err := hcdfTable(data, hcdf.NewAnalyzer(cfg.HCDFParams()))
			if err != nil {
				return err
			}
			return writeTable(cmd, opts.output, out)
		},
	}
}

// hcdfTable lays out the HCDF of every frame, with 1 in the peak column for
// detected harmonic changes
func hcdfTable(data *dataset.Table, analyzer *hcdf.Analyzer) (*dataset.Table, error) {
	pcps, err := features.ChromaFrames(data)
	if err != nil {
		return nil, err
	}

	fn := make([]float64, data.Len())
	peak := make([]float64, data.Len())
	for _, g := range data.Groups() {
		frames := make([]tis.PCP, len(g.Rows))
		for i, r := range g.Rows {
			frames[i] = pcps[r]
		}
		res := analyzer.Analyze(frames)
		for i, r := range g.Rows {
			fn[r] = res.Function[i]
		}
		for _, p := range res.Peaks[1:] {
			peak[g.Rows[p]] = 1
		}
	}

	out := dataset.FromKeys(data.Keys())
	if err := out.SetColumn("hcdf", fn); err != nil {
		return nil, err
	}
	if err := out.SetColumn("hcdf_peak", peak); err != nil {
		return nil, err
	}
	return out, nil
}

func newPipelinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pipelines",
		Short: "List the pipeline catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tRESOLUTION")
			for _, e := range catalogue.Entries() {
				res := "-"
				if e.Kind == catalogue.FixedResolution {
					res = features.FormatResolution(dataset.Seconds(e.Resolution))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Kind, res)
			}
			return w.Flush()
		},
	}
}

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the configured datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTARGET\tFILTER\tCLASSES")
			for _, name := range cfg.DatasetNames() {
				d := cfg.Datasets[name]
				filter := d.FilterColumn
				if filter == "" {
					filter = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, d.TargetColumn, filter, strings.Join(d.Classes, ","))
			}
			return w.Flush()
		},
	}
}

func writeTable(cmd *cobra.Command, path string, t *dataset.Table) error {
	if path == "" || path == "-" {
		if err := dataset.WriteCSV(cmd.OutOrStdout(), t); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := writeAndClose(f, t); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	logging.Info("table written", logging.Fields{
		"rows":    t.Len(),
		"columns": len(t.Columns()),
		"output":  path,
	})
	return nil
}

// writeAndClose writes t to wc and reports the close error when the write
// itself succeeded
func writeAndClose(wc io.WriteCloser, t *dataset.Table) error {
	if err := dataset.WriteCSV(wc, t); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
