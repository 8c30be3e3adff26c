package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"wayfind/internal/issue"
	"wayfind/internal/observ"
	"wayfind/internal/resolver"
	"wayfind/internal/source"
)

// Options configures a resolution pass over a directory.
type Options struct {
	Jobs       int // max parallel workers, 0 = GOMAXPROCS
	MaxIssues  int // tree capacity, 0 = 100
	ImportMap  *resolver.ImportMap
	Roots      []string // package lookup roots, e.g. node_modules
	TracePaths bool
	DocLink    string
}

// Result is everything one pass produced.
type Result struct {
	Issues   []issue.Issue // ordered snapshot from EndPass
	FileSet  *source.FileSet
	Files    int // files scanned
	Requests int // requests found
	Failed   int // requests that did not resolve
	Dropped  int // issues rejected by the tree cap
	Timer    *observ.Timer
}

// HasErrors reports whether the pass produced an issue at Error urgency
// or above.
func (r *Result) HasErrors() bool {
	for i := range r.Issues {
		if r.Issues[i].Severity >= issue.SevError {
			return true
		}
	}
	return false
}

var sourceExts = map[string]bool{
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
	".css": true,
}

// listSourceFiles returns a sorted list of all resolvable source files
// under dir, as absolute paths. Hidden directories and node_modules are
// skipped: their internal imports are not the project's problem.
func listSourceFiles(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != abs && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if sourceExts[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// CheckDir runs one full resolution pass: list and load the source files,
// fan resolution workers out across them, collect every failure into one
// sink, and return the ordered snapshot. One worker per file; all workers
// share the sink and the pass token, and the errgroup wait fences EndPass
// behind every in-flight report.
func CheckDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	if opts.MaxIssues <= 0 {
		opts.MaxIssues = 100
	}
	timer := observ.NewTimer()

	scanPhase := timer.Begin("scan")
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make([]source.FileID, 0, len(files))
	loaded := make([]string, 0, len(files))
	tree := issue.NewTree(opts.MaxIssues)
	sink := issue.NewSink(tree)
	tok := sink.BeginPass()

	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			// unreadable files become issues, not pass failures
			issue.ReportError(sink, tok, path, "io", "Error reading source file",
				"unable to read file: "+err.Error()).Emit()
			continue
		}
		fileIDs = append(fileIDs, id)
		loaded = append(loaded, path)
	}
	timer.End(scanPhase, plural(len(loaded), "file"))

	res := resolver.New(resolver.Options{
		Sink:       sink,
		ImportMap:  opts.ImportMap,
		Roots:      opts.Roots,
		TracePaths: opts.TracePaths,
		DocLink:    opts.DocLink,
	})

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var requests, failed atomic.Int64

	resolvePhase := timer.Begin("resolve")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(loaded), 1)))

	for i := range loaded {
		id, path := fileIDs[i], loaded[i]
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			f := fileSet.Get(id)
			isCSS := filepath.Ext(path) == ".css"
			for _, req := range resolver.ScanFile(f, isCSS) {
				requests.Add(1)
				if _, ok := res.Resolve(gctx, tok, resolver.Request{
					From: path,
					Raw:  req.Raw,
					Kind: req.Kind,
					Span: req.Span,
				}); !ok {
					failed.Add(1)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	issues := sink.EndPass(tok)
	timer.End(resolvePhase, plural(int(requests.Load()), "request"))

	return &Result{
		Issues:   issues,
		FileSet:  fileSet,
		Files:    len(loaded),
		Requests: int(requests.Load()),
		Failed:   int(failed.Load()),
		Dropped:  tree.Dropped(),
		Timer:    timer,
	}, nil
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
