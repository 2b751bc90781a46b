package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/techterm/internal/logger"
	"github.com/cognicore/techterm/pkg/techterm"
	"github.com/cognicore/techterm/pkg/techterm/config"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
	"github.com/cognicore/techterm/pkg/techterm/method"
)

// loadConfig reads the config file and applies command-line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if m, _ := cmd.Flags().GetString("method"); m != "" {
		cfg.Method.Name = m
	}
	if dir, _ := cmd.Flags().GetString("cache-dir"); dir != "" {
		cfg.Cache.Dir = dir
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

// domainsFromArgs groups positional PDFs under --domain, or reads a YAML file
// mapping domain names to PDF lists.
func domainsFromArgs(cmd *cobra.Command, args []string) ([]techterm.Domain, error) {
	file, _ := cmd.Flags().GetString("domains")
	if file == "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: no PDFs given", internalerr.ErrInvalidInput)
		}
		name, _ := cmd.Flags().GetString("domain")
		return []techterm.Domain{{Name: name, PDFs: args}}, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var byName map[string][]string
	if err := yaml.Unmarshal(data, &byName); err != nil {
		return nil, fmt.Errorf("%w: parsing domains file %s: %w", internalerr.ErrInvalidInput, file, err)
	}
	if len(byName) == 0 {
		return nil, fmt.Errorf("%w: domains file %s lists no domains", internalerr.ErrInvalidInput, file)
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	domains := make([]techterm.Domain, len(names))
	for i, name := range names {
		domains[i] = techterm.Domain{Name: name, PDFs: byName[name]}
	}
	return domains, nil
}

func newExtractor(cmd *cobra.Command) (*techterm.Extractor, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return techterm.New(techterm.Options{Config: cfg, Logger: logger.WithComponent("techterm")})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRankings(w io.Writer, rankings []*method.Ranking, top int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range rankings {
		fmt.Fprintf(tw, "# %s\n", r.Domain)
		for i, t := range r.Terms {
			if top > 0 && i >= top {
				break
			}
			fmt.Fprintf(tw, "%.6f\t%s\n", t.Score, t.Lemma)
		}
	}
	return tw.Flush()
}

func writeResults(w io.Writer, results []techterm.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, res := range results {
		for _, g := range res.Glossaries {
			for _, page := range g.Pages {
				for _, t := range page.Terms {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%.6f\t%s\n", res.Domain, g.Path, page.Page, t.Score, t.Surface)
				}
			}
		}
	}
	return tw.Flush()
}

var rootCmd = &cobra.Command{
	Use:   "techterm",
	Short: "Extract and rank technical terms from PDFs",
	Long: `techterm converts PDFs to text runs, builds candidate terms, ranks them per
domain and selects the technical terms of every page.

Examples:
  techterm extract --domain nlp paper1.pdf paper2.pdf
  techterm rank --method mdp --domains domains.yaml
  techterm cache purge`,
	SilenceUsage: true,
}

var extractCmd = &cobra.Command{
	Use:   "extract [pdfs...]",
	Short: "Select the technical terms of every page",
	RunE: func(cmd *cobra.Command, args []string) error {
		domains, err := domainsFromArgs(cmd, args)
		if err != nil {
			return err
		}
		ex, err := newExtractor(cmd)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		defer ex.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		results, err := ex.Extract(ctx, domains...)
		if err != nil {
			return fmt.Errorf("extract failed: %w", err)
		}
		if asText, _ := cmd.Flags().GetBool("text"); asText {
			return writeResults(cmd.OutOrStdout(), results)
		}
		return writeJSON(cmd.OutOrStdout(), results)
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank [pdfs...]",
	Short: "Rank the candidate terms of each domain",
	RunE: func(cmd *cobra.Command, args []string) error {
		domains, err := domainsFromArgs(cmd, args)
		if err != nil {
			return err
		}
		ex, err := newExtractor(cmd)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		defer ex.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		rankings, err := ex.Rank(ctx, domains...)
		if err != nil {
			return fmt.Errorf("rank failed: %w", err)
		}
		if asText, _ := cmd.Flags().GetBool("text"); asText {
			top, _ := cmd.Flags().GetInt("top")
			return writeRankings(cmd.OutOrStdout(), rankings, top)
		}
		return writeJSON(cmd.OutOrStdout(), rankings)
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the layer caches",
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every cached entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := newExtractor(cmd)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		defer ex.Close()
		if err := ex.Purge(cmd.Context()); err != nil {
			return fmt.Errorf("purge failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cache purged")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().String("cache-dir", "", "Cache directory (overrides config)")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")

	for _, cmd := range []*cobra.Command{extractCmd, rankCmd} {
		cmd.Flags().StringP("method", "m", "", "Ranking method: tf, flr, hits, flrh, mdp")
		cmd.Flags().StringP("domain", "d", "default", "Domain name for the positional PDFs")
		cmd.Flags().String("domains", "", "YAML file mapping domain names to PDF lists")
		cmd.Flags().Bool("text", false, "Print a table instead of JSON")
		cmd.MarkFlagsMutuallyExclusive("domain", "domains")
	}
	rankCmd.Flags().Int("top", 0, "Print only the top N terms per domain in text mode")

	cacheCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(extractCmd, rankCmd, cacheCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
