// Package issue defines the diagnostic model shared by all resolution
// phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     failures and notes produced while resolving module requests.
//   - Offer light-weight aggregation (Tree, Sink) so producers can emit
//     issues without coupling to storage or formatting layers.
//
// # Data model
//
// Issue is the central record. It contains:
//
//   - Severity – seven-level urgency enum defined in severity.go.
//   - Context – the absolute path of the file being processed; together
//     with Category and Title it forms the dedup Key.
//   - Description – one line, may interpolate the failing request.
//   - Detail – free-form multi-line elaboration, rendered verbatim.
//   - DocLink – optional URL, empty means absent.
//   - Source – weak span reference into a source.FileSet.
//   - SubIssues – causal children; a parent is always at least as urgent
//     as its most urgent child (repaired by promotion, never rejection).
//   - Path – optional ProcessingPath trace. nil and zero-length are
//     different states: "never instrumented" versus "instrumented, no
//     steps recorded".
//
// # Aggregation
//
// Tree keys issues by (category, context, title). Re-inserting a key
// merges: max severity, first non-empty detail and doc link, key-deduped
// sub-issue union in first-seen order. Sink brackets passes: BeginPass
// clears the tree and issues a PassToken, concurrent workers Report with
// that token, EndPass returns the ordered snapshot. Tokens from
// superseded passes are dropped silently, so a watch-mode restart cannot
// leak stale issues into the new pass.
//
// Resolution failures are data, never errors: nothing in this package
// returns an error for a failed resolution. Only programmer misuse
// (merging across keys, reporting on an ended pass, reusing a finalized
// PathBuilder) panics.
package issue
