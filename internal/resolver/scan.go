package resolver

import (
	"fmt"
	"regexp"

	"fortio.org/safecast"

	"wayfind/internal/issue"
	"wayfind/internal/source"
)

// ScannedRequest is one module request extracted from file content. The
// span covers the quoted request string, so issues can point at it.
type ScannedRequest struct {
	Raw  string
	Kind issue.RequestKind
	Span source.Span
}

var (
	reRequire    = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
	reImportFrom = regexp.MustCompile(`(?m)^[ \t]*(?:import|export)\b[^'"\n]*?\bfrom\s+['"]([^'"]+)['"]`)
	reImportBare = regexp.MustCompile(`(?m)^[ \t]*import\s+['"]([^'"]+)['"]`)
	reCSSImport  = regexp.MustCompile(`@import\s+(?:url\(\s*)?['"]([^'"]+)['"]`)
)

type pattern struct {
	re   *regexp.Regexp
	kind issue.RequestKind
}

var jsPatterns = []pattern{
	{reRequire, issue.RequestCommonJS},
	{reImportFrom, issue.RequestESM},
	{reImportBare, issue.RequestESM},
}

var cssPatterns = []pattern{
	{reCSSImport, issue.RequestCSSImport},
}

// ScanFile extracts module requests from a loaded file. CSS files are
// scanned for @import only; everything else for require and ESM imports.
func ScanFile(f *source.File, isCSS bool) []ScannedRequest {
	patterns := jsPatterns
	if isCSS {
		patterns = cssPatterns
	}

	var out []ScannedRequest
	for _, p := range patterns {
		for _, m := range p.re.FindAllSubmatchIndex(f.Content, -1) {
			// m[2]:m[3] is the first capture group: the request string
			start, err := safecast.Conv[uint32](m[2])
			if err != nil {
				panic(fmt.Errorf("scan offset overflow: %w", err))
			}
			end, err := safecast.Conv[uint32](m[3])
			if err != nil {
				panic(fmt.Errorf("scan offset overflow: %w", err))
			}
			out = append(out, ScannedRequest{
				Raw:  string(f.Content[m[2]:m[3]]),
				Kind: p.kind,
				Span: source.Span{File: f.ID, Start: start, End: end},
			})
		}
	}
	return out
}
