package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartbridge/pkg/cache"
	"github.com/matzehuels/chartbridge/pkg/chart"
	"github.com/matzehuels/chartbridge/pkg/options"
	"github.com/matzehuels/chartbridge/pkg/table"
)

// buildCacheTTL bounds how long CLI build results stay cached.
const buildCacheTTL = 24 * time.Hour

// cliKeyer namespaces CLI cache entries so a cache directory shared with a
// server deployment cannot collide on keys.
var cliKeyer = cache.NewScopedKeyer(nil, "cli:")

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		chartType  string
		labelCol   string
		valueCols  string
		radiusCol  string
		groupCol   string
		optionsArg string
		sheet      string
		output     string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "build <data-file>",
		Short: "Build a chart configuration from a data file",
		Long: `Build reads tabular data from a CSV or XLSX file, maps its columns onto
the requested chart type, and writes the assembled configuration as JSON.

Columns are inferred when not named explicitly: numeric columns become the
chart's value series and the label column falls back to a family-specific
default. Use --values, --label, --radius, and --group to pin roles.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := c.Logger
			prog := newProgress(logger)

			if chartType == "" {
				chartType = c.Config.DefaultType
			}

			buildCache, err := newCache(noCache)
			if err != nil {
				return err
			}
			defer buildCache.Close()

			var sp *Spinner
			if isTerminal(os.Stderr) {
				sp = newSpinnerWithContext(cmd.Context(), "Loading "+args[0])
				sp.Start()
			}
			tbl, sourceDigest, err := loadTable(cmd.Context(), buildCache, args[0], sheet)
			if sp != nil {
				sp.Stop()
			}
			if err != nil {
				return err
			}
			logger.Debug("loaded table", "shape", tbl.String())

			opts, err := parseOptionsArg(optionsArg)
			if err != nil {
				return err
			}

			cfgJSON, cached, err := buildWithCache(cmd, buildCache, buildInputs{
				chartType:    chartType,
				sourceDigest: sourceDigest,
				sheet:        sheet,
				labelCol:     labelCol,
				valueCols:    splitColumns(valueCols),
				radiusCol:    radiusCol,
				groupCol:     groupCol,
				options:      opts,
			}, tbl)
			if err != nil {
				return err
			}

			var cfg chart.Config
			if err := json.Unmarshal(cfgJSON, &cfg); err != nil {
				return fmt.Errorf("decode cached configuration: %w", err)
			}

			if output == "" {
				fmt.Println(string(cfgJSON))
			} else {
				if err := os.WriteFile(output, cfgJSON, 0644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				printSuccess("Built %s chart", chartType)
				printFile(output)
			}
			printStats(tbl.RowCount(), len(cfg.Data.Datasets), cached)
			prog.done(fmt.Sprintf("Built %s chart with %d datasets", chartType, len(cfg.Data.Datasets)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&chartType, "type", "t", "", "chart type (bar, line, radar, pie, doughnut, polarArea, scatter, bubble)")
	cmd.Flags().StringVarP(&labelCol, "label", "l", "", "column used for labels (or x values for point charts)")
	cmd.Flags().StringVar(&valueCols, "values", "", "comma-separated value columns (inferred when empty)")
	cmd.Flags().StringVar(&radiusCol, "radius", "", "radius column (bubble charts)")
	cmd.Flags().StringVar(&groupCol, "group", "", "grouping column (point charts)")
	cmd.Flags().StringVar(&optionsArg, "options", "", "option overrides: inline JSON or a path to a JSON file")
	cmd.Flags().StringVar(&sheet, "sheet", "", "XLSX sheet name (interactive picker when omitted)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the build cache")

	return cmd
}

// buildInputs collects everything that influences a build, for cache keying.
type buildInputs struct {
	chartType    string
	sourceDigest string
	sheet        string
	labelCol     string
	valueCols    []string
	radiusCol    string
	groupCol     string
	options      options.Tree
}

// buildWithCache returns the configuration JSON for the inputs, consulting
// the build cache first.
func buildWithCache(cmd *cobra.Command, buildCache cache.Cache, in buildInputs, tbl *table.Table) ([]byte, bool, error) {
	ctx := cmd.Context()
	key := cliKeyer.ConfigKey(in.chartType, in.sourceDigest, map[string]any{
		"sheet":   in.sheet,
		"label":   in.labelCol,
		"values":  in.valueCols,
		"radius":  in.radiusCol,
		"group":   in.groupCol,
		"options": in.options,
	})

	if data, ok, err := buildCache.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	cfg, err := chart.Build(tbl, chart.Type(in.chartType), chart.BuildOptions{
		LabelColumn: in.labelCol,
		Values: chart.ValueSpec{
			Columns: in.valueCols,
			Radius:  in.radiusCol,
			Group:   in.groupCol,
		},
		Options: in.options,
	})
	if err != nil {
		return nil, false, err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, false, err
	}
	_ = buildCache.Set(ctx, key, data, buildCacheTTL)
	return data, false, nil
}

// loadTable reads a CSV or XLSX file into a table, returning a digest of the
// raw bytes for cache keying. Parsed tables are cached under the digest and
// sheet, so rebuilding from an unchanged workbook skips the parse.
func loadTable(ctx context.Context, tblCache cache.Cache, path, sheet string) (*table.Table, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read data file: %w", err)
	}
	digest := cache.Hash(raw)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return nil, "", fmt.Errorf("unsupported data file type %q (want .csv or .xlsx)", filepath.Ext(path))
	}
	if ext == ".xlsx" && sheet == "" {
		sheet, err = pickSheet(path)
		if err != nil {
			return nil, "", err
		}
	}

	key := cliKeyer.TableKey(digest, sheet)
	if tbl, ok := cachedTable(ctx, tblCache, key); ok {
		return tbl, digest, nil
	}

	var tbl *table.Table
	switch ext {
	case ".csv":
		tbl, err = table.FromCSV(strings.NewReader(string(raw)))
	case ".xlsx":
		tbl, err = table.FromXLSX(path, sheet)
	}
	if err != nil {
		return nil, "", err
	}
	storeTable(ctx, tblCache, key, tbl)
	return tbl, digest, nil
}

// cachedTable decodes a cached column set back into a table. Any decode or
// shape failure is treated as a miss so a stale entry never blocks a build.
func cachedTable(ctx context.Context, c cache.Cache, key string) (*table.Table, bool) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var cols []table.Column
	if err := json.Unmarshal(data, &cols); err != nil {
		return nil, false
	}
	tbl, err := table.New(cols...)
	if err != nil {
		return nil, false
	}
	return tbl, true
}

// storeTable caches a parsed table as its column set.
func storeTable(ctx context.Context, c cache.Cache, key string, tbl *table.Table) {
	data, err := json.Marshal(tbl.Columns())
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, data, buildCacheTTL)
}

// pickSheet selects an XLSX sheet: the only sheet when there is one, the
// interactive picker on a terminal, the first sheet otherwise.
func pickSheet(path string) (string, error) {
	sheets, err := table.SheetNames(path)
	if err != nil {
		return "", err
	}
	if len(sheets) <= 1 {
		return "", nil // FromXLSX defaults to the first sheet
	}
	if !isTerminal(os.Stdin) {
		printWarning("Workbook has %d sheets; using %q (pass --sheet to pick another)", len(sheets), sheets[0])
		return sheets[0], nil
	}
	return runSheetPicker(sheets)
}

// parseOptionsArg decodes the --options flag: inline JSON when it starts
// with '{', a JSON file path otherwise. Empty means no overrides.
func parseOptionsArg(arg string) (options.Tree, error) {
	if arg == "" {
		return nil, nil
	}
	raw := []byte(arg)
	if !strings.HasPrefix(strings.TrimSpace(arg), "{") {
		var err error
		raw, err = os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("read options file: %w", err)
		}
	}
	var tree options.Tree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}
	return tree, nil
}

// splitColumns parses a comma-separated column list, dropping empty entries.
func splitColumns(s string) []string {
	if s == "" {
		return nil
	}
	var cols []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
