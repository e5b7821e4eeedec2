// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/neutrality/covariance"
	"github.com/katalvlaran/neutrality/divergence"
	"github.com/katalvlaran/neutrality/internal/config"
	"github.com/katalvlaran/neutrality/matrix"
	"github.com/katalvlaran/neutrality/neutrality"
	"github.com/katalvlaran/neutrality/outcome"
	"github.com/katalvlaran/neutrality/series"
)

var (
	configFile string
	prefix     string
	sheet      string
	verbose    bool
	workers    int
	row        int
	against    int
	vsNeutral  bool
	plotHeight int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Binding the flags again resets the
// package-level flag variables to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "neutrality",
		Short:         "distance-from-neutrality measures for community time series",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "species column prefix (default from config: species)")
	rootCmd.PersistentFlags().StringVar(&sheet, "sheet", "", "worksheet name for .xlsx input (default: first)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "attach and log the diagnostic trace")

	klCmd := &cobra.Command{
		Use:   "kl FILE...",
		Short: "Gaussian KL divergence from the neutral model",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runKL,
	}
	klCmd.Flags().IntVar(&workers, "workers", -1, "concurrent evaluations (0 = GOMAXPROCS)")

	bcCmd := &cobra.Command{
		Use:   "braycurtis FILE",
		Short: "Bray-Curtis distance between two time steps, or from the neutral community",
		Args:  cobra.ExactArgs(1),
		RunE:  runBrayCurtis,
	}
	bcCmd.Flags().IntVar(&row, "row", 0, "time step index")
	bcCmd.Flags().IntVar(&against, "against", 1, "second time step index")
	bcCmd.Flags().BoolVar(&vsNeutral, "neutral", false, "compare --row with the uniform community")

	jsCmd := &cobra.Command{
		Use:   "jensenshannon FILE",
		Short: "Jensen-Shannon divergence between two time steps (relative abundances)",
		Args:  cobra.ExactArgs(1),
		RunE:  runJensenShannon,
	}
	jsCmd.Flags().IntVar(&row, "row", 0, "time step index")
	jsCmd.Flags().IntVar(&against, "against", 1, "second time step index")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum FILE",
		Short: "plot the eigenvalues of the observed and neutral covariance",
		Args:  cobra.ExactArgs(1),
		RunE:  runSpectrum,
	}
	spectrumCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height in rows")

	rootCmd.AddCommand(klCmd, bcCmd, jsCmd, spectrumCmd)

	return rootCmd
}

// loadConfig merges the config file (if any) with flags.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Prefix = prefix
	}
	if cmd.Flags().Changed("sheet") {
		cfg.Sheet = sheet
	}
	if verbose {
		cfg.Verbose = true
	}
	if cmd.Flags().Lookup("workers") != nil && cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	lvl, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	return cfg, logger, nil
}

func loadSeries(path string, cfg *config.Config) (series.Series, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return series.ReadXLSX(path, cfg.Sheet, cfg.Prefix)
	}

	f, err := os.Open(path)
	if err != nil {
		return series.Series{}, err
	}
	defer f.Close()

	return series.ReadCSV(f, cfg.Prefix)
}

func runKL(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	in := make([]series.Series, len(args))
	for i, path := range args {
		if in[i], err = loadSeries(path, cfg); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("loaded series", "file", path, "steps", in[i].Len(), "species", in[i].Species())
	}

	reports, err := neutrality.Batch(context.Background(), in, cfg.Options(logger)...)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tKL\tTRACE\tMEAN\tRANK\tDET\tFALLBACK")
	for i, rep := range reports {
		if !rep.IsDefined() {
			fmt.Fprintf(w, "%s\t%s\t-\t-\t-\t-\t-\n", args[i], rep.Result)
			continue
		}
		t := rep.Terms
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.6g\t%.0f\t%.6g\t%t\n",
			args[i], rep.Float(), t.Trace, t.Mean, t.Rank, t.Determinant, t.Fallback)
		logWarnings(logger, args[i], rep.Result)
	}

	return w.Flush()
}

func logWarnings(logger *slog.Logger, source string, r outcome.Result) {
	for _, warn := range r.Warnings() {
		logger.Warn(warn.Message, "file", source, "code", warn.Code.String())
	}
}

// pickRows returns time steps i and j of s, bounds-checked.
func pickRows(s series.Series, i, j int) ([]float64, []float64, error) {
	for _, k := range []int{i, j} {
		if k < 0 || k >= s.Len() {
			return nil, nil, fmt.Errorf("time step %d out of range [0,%d)", k, s.Len())
		}
	}

	return s.Row(i), s.Row(j), nil
}

func runBrayCurtis(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := loadSeries(args[0], cfg)
	if err != nil {
		return err
	}

	if vsNeutral {
		x, _, err := pickRows(s, row, row)
		if err != nil {
			return err
		}
		d, err := divergence.BrayCurtisFromNeutral(relative(x))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "bray-curtis(row %d, neutral) = %.6g\n", row, d)

		return nil
	}

	x, y, err := pickRows(s, row, against)
	if err != nil {
		return err
	}
	d, err := divergence.BrayCurtis(x, y)
	if err != nil {
		return err
	}
	gap, err := divergence.BrayCurtisGap(x, y)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "bray-curtis(row %d, row %d) = %.6g (standard-definition gap %.3g)\n", row, against, d, gap)

	return nil
}

func runJensenShannon(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := loadSeries(args[0], cfg)
	if err != nil {
		return err
	}
	x, y, err := pickRows(s, row, against)
	if err != nil {
		return err
	}

	r, err := divergence.JensenShannon(relative(x), relative(y))
	if err != nil {
		return err
	}
	logWarnings(logger, args[0], r)
	fmt.Fprintf(cmd.OutOrStdout(), "jensen-shannon(row %d, row %d) = %s\n", row, against, r)

	return nil
}

// relative rescales a time step to relative abundances; an all-zero step is
// returned unchanged.
func relative(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if total := floats.Sum(out); total > 0 {
		floats.Scale(1/total, out)
	}

	return out
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := loadSeries(args[0], cfg)
	if err != nil {
		return err
	}
	m, err := covariance.Estimate(s)
	if err != nil {
		return err
	}

	observed, err := matrix.SymEigenvalues(m.Cov)
	if err != nil {
		return err
	}
	neutral, err := matrix.SymEigenvalues(m.NeutralCov())
	if err != nil {
		return err
	}

	plot := asciigraph.PlotMany([][]float64{observed, neutral},
		asciigraph.Height(plotHeight),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("covariance eigenvalues, S=%d T=%d (blue: observed, red: neutral)", m.S, m.T)),
	)
	fmt.Fprintln(cmd.OutOrStdout(), plot)

	return nil
}
