package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"wayfind/internal/issue"
	"wayfind/internal/source"
)

// Options configures a Resolver.
type Options struct {
	// Sink receives an issue for every failed resolution. Required.
	Sink *issue.Sink
	// ImportMap is consulted before the filesystem. Optional.
	ImportMap *ImportMap
	// Roots are directories probed for package-class requests, relative
	// to the importing file's directory and every ancestor.
	Roots []string
	// MaxMapDepth caps import-map rewrite chains; cyclic maps otherwise
	// recurse forever. Zero means the default of 8.
	MaxMapDepth int
	// TracePaths enables processing-path instrumentation. When false,
	// issues carry a nil path ("never instrumented").
	TracePaths bool
	// DocLink, when set, is attached to every resolve issue.
	DocLink string
}

// Request is one module request to resolve.
type Request struct {
	From string // absolute path of the importing file
	Raw  string // request string as written in source
	Kind issue.RequestKind
	Span source.Span // location of the request string, zero when unknown
}

// Resolver turns module requests into absolute file paths and reports
// failures as issues. Safe for concurrent use.
type Resolver struct {
	opts Options
}

func New(opts Options) *Resolver {
	if opts.MaxMapDepth <= 0 {
		opts.MaxMapDepth = 8
	}
	return &Resolver{opts: opts}
}

var extsByKind = map[issue.RequestKind][]string{
	issue.RequestCommonJS:  {".js", ".cjs", ".mjs", ".json"},
	issue.RequestESM:       {".js", ".mjs", ".cjs", ".json"},
	issue.RequestCSSImport: {".css"},
}

// Resolve attempts to satisfy one request. On success it returns the
// absolute path of the matched file. On failure it reports exactly one
// issue to the sink and returns ok=false; resolution failures never
// surface as errors.
func (r *Resolver) Resolve(ctx context.Context, tok issue.PassToken, req Request) (string, bool) {
	var trace *issue.PathBuilder
	if r.opts.TracePaths {
		trace = issue.NewPathBuilder()
	}

	resolved, outcome, rewritten := r.resolve(ctx, req, req.Raw, trace, 0)
	if resolved != "" {
		return resolved, true
	}

	r.reportFailure(tok, req, trace, outcome, rewritten)
	return "", false
}

// resolve walks import-map rewrites and filesystem candidates. It returns
// the import-map outcome of the outermost lookup so the failure detail
// can name it.
func (r *Resolver) resolve(ctx context.Context, req Request, raw string, trace *issue.PathBuilder, depth int) (string, MapOutcome, string) {
	if ctx.Err() != nil || depth > r.opts.MaxMapDepth {
		return "", MapNoEntry, ""
	}

	outcome, rewritten := r.opts.ImportMap.Lookup(raw)
	switch outcome {
	case MapExcluded:
		return "", outcome, ""
	case MapRewritten:
		resolved, _, _ := r.resolve(ctx, req, rewritten, trace, depth+1)
		return resolved, outcome, rewritten
	}

	switch Classify(raw) {
	case ClassRelative:
		base := filepath.Join(filepath.Dir(req.From), raw)
		return r.probeCandidates(req, raw, base, trace), outcome, ""
	case ClassAbsolute:
		return r.probeCandidates(req, raw, raw, trace), outcome, ""
	case ClassPackage:
		return r.probePackage(req, raw, trace), outcome, ""
	default:
		// empty and URI requests have nothing to probe
		return "", outcome, ""
	}
}

// probeCandidates tries the base path as written, then with known
// extensions, then as a directory with index files. Every probe is
// recorded in the trace.
func (r *Resolver) probeCandidates(req Request, raw, base string, trace *issue.PathBuilder) string {
	exts := extsByKind[req.Kind]

	candidates := make([]string, 0, 2*(len(exts)+1))
	candidates = append(candidates, base)
	for _, ext := range exts {
		candidates = append(candidates, base+ext)
	}
	for _, ext := range exts {
		candidates = append(candidates, filepath.Join(base, "index"+ext))
	}

	for _, candidate := range candidates {
		if trace != nil {
			trace.Append(issue.Step{Request: raw, Kind: req.Kind, Location: candidate})
		}
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// probePackage looks for package-class requests under each configured
// root in the importing file's directory and its ancestors, nearest
// first.
func (r *Resolver) probePackage(req Request, raw string, trace *issue.PathBuilder) string {
	if len(r.opts.Roots) == 0 {
		return ""
	}
	dir := filepath.Dir(req.From)
	for {
		for _, root := range r.opts.Roots {
			base := filepath.Join(dir, root, filepath.FromSlash(raw))
			if found := r.probeCandidates(req, raw, base, trace); found != "" {
				return found
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// reportFailure emits the single issue a failed resolution yields. The
// detail block has a fixed shape consumers snapshot-test against: four
// lines (parsed request, start path, request type, import map outcome)
// terminated by a trailing newline.
func (r *Resolver) reportFailure(tok issue.PassToken, req Request, trace *issue.PathBuilder, outcome MapOutcome, rewritten string) {
	class := Classify(req.Raw)
	title := fmt.Sprintf("Error resolving %s request", req.Kind)
	description := fmt.Sprintf("unable to resolve %s %q", class, req.Raw)
	detail := fmt.Sprintf(
		"Parsed request as written in source code: %s %q\n"+
			"Path where resolving has started: %s\n"+
			"Type of request: %s request\n"+
			"Import map: %s\n",
		class, req.Raw, req.From, req.Kind, describeOutcome(outcome, rewritten),
	)

	b := issue.ReportError(r.opts.Sink, tok, req.From, "resolve", title, description).
		WithDetail(detail).
		WithSource(req.Span)
	if r.opts.DocLink != "" {
		b = b.WithDocLink(r.opts.DocLink)
	}
	if trace != nil {
		b = b.WithPath(trace.Finalize())
	}
	b.Emit()
}
