package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"corvid/internal/cache"
	"corvid/internal/config"
	"corvid/internal/errors"
	"corvid/internal/semantic"
	"corvid/internal/workspace"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.php|directory]...",
	Short: "Check PHP sources and report findings",
	Long: `Check parses every file, collects declarations across all of them and
reports findings per file. Immediate findings make the command fail; future
findings are reported as warnings.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Int("max-diagnostics", 0, "maximum findings per file (0=unlimited)")
	checkCmd.Flags().Duration("unit-timeout", 0, "per-file analysis budget (0=none)")
	checkCmd.Flags().Bool("no-future", false, "hide future-tier findings")
	checkCmd.Flags().StringSlice("promote", nil, "finding kinds to report as immediate")
	checkCmd.Flags().StringSlice("disable", nil, "finding kinds to suppress")
	checkCmd.Flags().Bool("no-cache", false, "ignore the declaration cache")
}

type run struct {
	cfg     config.Config
	files   []string
	sources map[string]string
	result  *semantic.Result
	elapsed time.Duration
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "short" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	r, err := analyze(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		writePretty(out, r)
	case "short":
		writeShort(out, r)
	case "json":
		if err := writeJSON(out, r); err != nil {
			return err
		}
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if !quiet && format != "json" {
		fmt.Fprintln(cmd.ErrOrStderr(), summary(r))
	}

	if r.result.HasImmediate() {
		return errFindings
	}
	return nil
}

// analyze loads the configuration, applies flag overrides and runs the
// pipeline over the named paths.
func analyze(cmd *cobra.Command, args []string) (*run, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return nil, err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := workspace.Files(cfg, paths)
	if err != nil {
		return nil, err
	}
	inputs, sources, err := workspace.Load(files)
	if err != nil {
		return nil, err
	}

	program := semantic.NewProgram(cfg.Options(), nil)
	noCache, _ := cmd.Flags().GetBool("no-cache")
	if cfg.CacheDir != "" && !noCache {
		disk, err := cache.Open(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		program = program.WithCache(disk)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := program.Analyze(ctx, inputs)
	if err != nil {
		return nil, err
	}
	return &run{
		cfg:     cfg,
		files:   files,
		sources: sources,
		result:  result,
		elapsed: time.Since(start),
	}, nil
}

// applyFlags overrides configuration values with flags set on the command
// line. Commands without a flag skip it.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("max-diagnostics") {
		cfg.MaxDiagnostics, _ = flags.GetInt("max-diagnostics")
	}
	if flags.Changed("unit-timeout") {
		cfg.UnitTimeout.Duration, _ = flags.GetDuration("unit-timeout")
	}
	if flags.Changed("no-future") {
		noFuture, _ := flags.GetBool("no-future")
		cfg.ReportFuture = !noFuture
	}
	for _, name := range []string{"promote", "disable"} {
		if !flags.Changed(name) {
			continue
		}
		values, _ := flags.GetStringSlice(name)
		kinds := make([]errors.Kind, 0, len(values))
		for _, v := range values {
			kind, ok := errors.ParseKind(v)
			if !ok {
				return fmt.Errorf("--%s: unknown finding kind %q", name, v)
			}
			kinds = append(kinds, kind)
		}
		if name == "promote" {
			cfg.Promote = append(cfg.Promote, kinds...)
		} else {
			cfg.Disable = append(cfg.Disable, kinds...)
		}
	}
	if cfg.Jobs < 0 || cfg.MaxDiagnostics < 0 || cfg.UnitTimeout.Duration < 0 {
		return fmt.Errorf("numeric options must not be negative")
	}
	return nil
}

func writePretty(w io.Writer, r *run) {
	for _, unit := range r.result.Units {
		if len(unit.Diagnostics) > 0 {
			reporter := errors.NewErrorReporter(unit.Path, r.sources[unit.Path])
			fmt.Fprint(w, reporter.FormatAll(unit.Diagnostics))
		}
		if unit.Err != nil {
			fmt.Fprintf(w, "%s: %s: analysis aborted: %s\n\n", color.RedString("error"), unit.Path, unit.Err)
		}
	}
}

func writeShort(w io.Writer, r *run) {
	for _, unit := range r.result.Units {
		for _, d := range unit.Diagnostics {
			fmt.Fprintf(w, "%s:%d:%d: %s[%s]: %s\n",
				unit.Path, d.Position.Line, d.Position.Column, d.Level(), d.Code, d.Message)
		}
		if unit.Err != nil {
			fmt.Fprintf(w, "%s: error: analysis aborted: %s\n", unit.Path, unit.Err)
		}
	}
}

type jsonUnit struct {
	Path        string              `json:"path"`
	Diagnostics []errors.Diagnostic `json:"diagnostics"`
	Aborted     string              `json:"aborted,omitempty"`
}

type jsonReport struct {
	Units     []jsonUnit `json:"units"`
	Immediate bool       `json:"immediate"`
}

func writeJSON(w io.Writer, r *run) error {
	report := jsonReport{
		Units:     make([]jsonUnit, 0, len(r.result.Units)),
		Immediate: r.result.HasImmediate(),
	}
	for _, unit := range r.result.Units {
		ju := jsonUnit{Path: unit.Path, Diagnostics: unit.Diagnostics}
		if ju.Diagnostics == nil {
			ju.Diagnostics = []errors.Diagnostic{}
		}
		if unit.Err != nil {
			ju.Aborted = unit.Err.Error()
		}
		report.Units = append(report.Units, ju)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func summary(r *run) string {
	var immediate, future, aborted int
	for _, unit := range r.result.Units {
		if unit.Err != nil {
			aborted++
		}
		for _, d := range unit.Diagnostics {
			if d.Tier == errors.Immediate {
				immediate++
			} else {
				future++
			}
		}
	}

	text := fmt.Sprintf("%d %s, %d %s in %d %s (%s)",
		immediate, plural(immediate, "error", "errors"),
		future, plural(future, "warning", "warnings"),
		len(r.files), plural(len(r.files), "file", "files"),
		formatDuration(r.elapsed))
	if aborted > 0 {
		text += fmt.Sprintf(", %d aborted", aborted)
	}

	if color.NoColor {
		return text
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	switch {
	case immediate > 0 || aborted > 0:
		style = style.Foreground(lipgloss.Color("1"))
	case future > 0:
		style = style.Foreground(lipgloss.Color("3"))
	}
	return style.Render(text)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
