package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wayfind/internal/driver"
	"wayfind/internal/issue"
	"wayfind/internal/issuefmt"
	"wayfind/internal/resolver"
	"wayfind/internal/snapshot"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <directory>",
	Short: "Resolve all module requests under a directory",
	Long:  `Scan every source file under a directory, resolve each require/import request against the import map and the filesystem, and report the requests that cannot be satisfied`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Int("max-issues", 0, "maximum number of issues to collect (0=manifest or 100)")
	checkCmd.Flags().String("min-severity", "", "lowest severity to print (default: manifest or suggestion)")
	checkCmd.Flags().Bool("timings", false, "show timing information")
	checkCmd.Flags().Bool("trace", false, "record processing paths for failed resolutions")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().String("baseline", "", "baseline mode (save|compare)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := args[0]

	manifest, hasManifest, err := loadProjectManifest(dir)
	if err != nil {
		return err
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	maxIssues, _ := cmd.Flags().GetInt("max-issues")
	minSevName, _ := cmd.Flags().GetString("min-severity")
	showTimings, _ := cmd.Flags().GetBool("timings")
	trace, _ := cmd.Flags().GetBool("trace")
	fullpath, _ := cmd.Flags().GetBool("fullpath")
	baselineMode, _ := cmd.Flags().GetString("baseline")
	colorMode, _ := cmd.Flags().GetString("color")

	opts := driver.Options{
		Jobs:       jobs,
		MaxIssues:  maxIssues,
		Roots:      []string{"node_modules"},
		TracePaths: trace,
	}
	minSev := issue.SevSuggestion
	if hasManifest {
		cfg := manifest.Config
		if len(cfg.Resolve.Roots) > 0 {
			opts.Roots = cfg.Resolve.Roots
		}
		if len(cfg.Resolve.ImportMap) > 0 {
			opts.ImportMap = resolver.NewImportMap(cfg.Resolve.ImportMap)
		}
		opts.DocLink = cfg.Resolve.DocLink
		opts.TracePaths = opts.TracePaths || cfg.Resolve.Trace
		if opts.MaxIssues == 0 {
			opts.MaxIssues = cfg.Output.MaxIssues
		}
		if minSevName == "" && cfg.Output.MinSeverity != "" {
			minSevName = cfg.Output.MinSeverity
		}
	}
	if minSevName != "" {
		minSev, err = issue.ParseSeverity(minSevName)
		if err != nil {
			return err
		}
	}

	result, err := driver.CheckDir(cmd.Context(), dir, opts)
	if err != nil {
		return err
	}

	out := os.Stdout
	colored := useColor(colorMode, out)
	fmtOpts := issuefmt.Opts{
		Color:       colored,
		ShowPath:    opts.TracePaths,
		MinSeverity: minSev,
	}
	if fullpath {
		fmtOpts.PathMode = issuefmt.PathModeAbsolute
	}

	issuefmt.Pretty(out, result.Issues, result.FileSet, fmtOpts)

	counts := map[issue.Severity]int{}
	for _, is := range result.Issues {
		counts[is.Severity]++
	}
	fmt.Fprintf(out, "\n%d files, %d requests: %s\n",
		result.Files, result.Requests, issuefmt.Summary(counts, colored))
	if result.Dropped > 0 {
		fmt.Fprintf(out, "(%d issues dropped over the --max-issues cap)\n", result.Dropped)
	}
	if showTimings {
		fmt.Fprint(out, result.Timer.Summary())
	}

	if baselineMode != "" {
		if err := runBaseline(out, baselineMode, dir, result); err != nil {
			return err
		}
	}

	if result.HasErrors() {
		// diagnostics are data; the exit code is the only hard failure
		os.Exit(1)
	}
	return nil
}

// baselineKey keys the cache off the absolute path so relative and
// absolute spellings of the same directory share one baseline.
func baselineKey(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return snapshot.Key(abs), nil
}

// runBaseline saves the pass snapshot or diffs it against the saved one.
func runBaseline(out *os.File, mode, dir string, result *driver.Result) error {
	cache, err := snapshot.Open("wayfind")
	if err != nil {
		return err
	}
	key, err := baselineKey(dir)
	if err != nil {
		return err
	}
	records := snapshot.FromIssues(result.Issues)

	switch mode {
	case "save":
		if err := cache.Save(key, &snapshot.Payload{Dir: dir, Issues: records}); err != nil {
			return err
		}
		fmt.Fprintf(out, "baseline saved (%d issues)\n", len(records))
		return nil
	case "compare":
		baseline, ok, err := cache.Load(key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no baseline saved for %s; run with --baseline save first", dir)
		}
		diff := snapshot.Compare(baseline.Issues, records)
		if diff.Empty() {
			fmt.Fprintln(out, "baseline: no changes")
			return nil
		}
		for _, k := range diff.Added {
			fmt.Fprintf(out, "baseline: new   %s\n", k)
		}
		for _, k := range diff.Removed {
			fmt.Fprintf(out, "baseline: fixed %s\n", k)
		}
		return nil
	default:
		return fmt.Errorf("unsupported baseline mode %q (must be save or compare)", mode)
	}
}
