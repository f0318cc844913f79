package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"votecompare/internal/chart"
	"votecompare/internal/config"
	"votecompare/internal/exporter"
	"votecompare/internal/infrastructure"
	"votecompare/internal/ingest"
	"votecompare/internal/pipeline"
	"votecompare/pkg/contracts/domain"
)

// cliContext is populated by the root command before any subcommand runs
type cliContext struct {
	configPath string
	cfg        *config.Config
	paths      *config.Paths
	logger     *slog.Logger
}

func rootCommand() *cobra.Command {
	cc := &cliContext{}

	rootCmd := &cobra.Command{
		Use:           "votecsv",
		Short:         "Vote share by neighborhood",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cc.initialize(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&cc.configPath, "config", "c", "", "Path to YAML config file")

	rootCmd.AddCommand(
		exportCommand(cc),
		domainCommand(cc),
		sourcesCommand(cc),
	)
	return rootCmd
}

func (cc *cliContext) initialize(cmd *cobra.Command) error {
	var err error
	if cc.configPath != "" {
		cc.cfg, err = config.LoadFile(cc.configPath)
	} else {
		cc.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	cc.paths, err = config.GetPaths(cc.cfg.Paths)
	if err != nil {
		return err
	}

	// Logs go to stderr so stdout stays usable for piping.
	cc.logger = infrastructure.NewLoggerWithWriter(cmd.ErrOrStderr(), cc.cfg.Logging)
	return nil
}

func (cc *cliContext) load(cmd *cobra.Command) (*pipeline.Dataset, error) {
	return pipeline.Load(cmd.Context(), cc.cfg.Sources,
		pipeline.WithLogger(cc.logger),
		pipeline.WithPaths(cc.paths),
		pipeline.WithNeighborhoodAliases(cc.cfg.Chart.NeighborhoodAliases),
	)
}

func exportCommand(cc *cliContext) *cobra.Command {
	var (
		out        string
		format     string
		candidates []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run the pipeline and write the combined table",
		Long: `Run the pipeline over the configured sources and write one row per
(neighborhood, candidate) pair. Relative output paths are placed in the
reports directory. Without --out the table is written to stdout as CSV.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
			}
			if format == "" {
				format = "csv"
			}
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unsupported format %q: use csv or xlsx", format)
			}
			if out == "" && format != "csv" {
				return fmt.Errorf("--out is required for %s output", format)
			}

			ds, err := cc.load(cmd)
			if err != nil {
				return err
			}

			selected := ds.CandidateNames()
			if cmd.Flags().Changed("candidates") {
				selected = chart.ParseSelection(candidates, true, ds.CandidateNames())
				if unknown := chart.Unknown(selected, ds.CandidateNames()); len(unknown) > 0 {
					return fmt.Errorf("unknown candidates: %s", strings.Join(unknown, ", "))
				}
			}
			records := ds.Filter(selected)

			if out == "" {
				return exporter.EncodeRecords(cmd.OutOrStdout(), records)
			}
			if format == "xlsx" {
				err = exporter.NewXLSXWriter(cc.paths).WriteRecords(out, records)
			} else {
				err = exporter.NewCSVWriter(cc.paths).WriteRecords(out, records)
			}
			if err != nil {
				return err
			}

			cc.logger.Info("Export complete",
				slog.String("output", out),
				slog.String("format", format),
				slog.Int("rows", len(records)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: csv, xlsx (default from --out extension)")
	cmd.Flags().StringSliceVar(&candidates, "candidates", nil, "Comma-separated candidates to include (default all)")
	return cmd
}

func domainCommand(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "domain",
		Short: "Print the reconciled neighborhood axis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := cc.load(cmd)
			if err != nil {
				return err
			}
			return printDomain(cmd, ds.Domain)
		},
	}
}

func printDomain(cmd *cobra.Command, dom domain.NeighborhoodDomain) error {
	for _, n := range dom {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), n); err != nil {
			return err
		}
	}
	return nil
}

func sourcesCommand(cc *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List readable files in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := ingest.FindSources(cc.paths.DataDir)
			if err != nil {
				return err
			}

			configured := make(map[string]string, len(cc.cfg.Sources))
			for _, src := range cc.cfg.Sources {
				configured[filepath.Base(src.Path)] = src.Name
			}

			w := cmd.OutOrStdout()
			for _, f := range files {
				name := configured[f.Name]
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", f.Name, f.Size, f.ModTime.Format("2006-01-02 15:04"), name)
			}
			return nil
		},
	}
}
