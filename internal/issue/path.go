package issue

import "fmt"

// RequestKind classifies the syntactic form of a module request.
type RequestKind uint8

const (
	RequestCommonJS RequestKind = iota
	RequestESM
	RequestCSSImport
)

func (k RequestKind) String() string {
	switch k {
	case RequestCommonJS:
		return "commonjs"
	case RequestESM:
		return "esm"
	case RequestCSSImport:
		return "css"
	}
	return "unknown"
}

// Step records one resolution attempt: the request as tried, its kind and
// the location that was probed.
type Step struct {
	Request  string
	Kind     RequestKind
	Location string
}

// ProcessingPath is the frozen trace of resolution attempts that led to an
// issue. A nil *ProcessingPath on an Issue means the resolver never
// instrumented the attempt; a non-nil path with zero steps means the
// attempt was instrumented but failed before recording anything. The two
// cases are kept distinct.
type ProcessingPath struct {
	steps []Step
}

// EmptyPath returns a frozen path with zero steps.
func EmptyPath() *ProcessingPath {
	return &ProcessingPath{}
}

func (p *ProcessingPath) Len() int {
	if p == nil {
		return 0
	}
	return len(p.steps)
}

// Steps returns a read-only view of the recorded steps. Callers must not
// modify the returned slice.
func (p *ProcessingPath) Steps() []Step {
	if p == nil {
		return nil
	}
	return p.steps
}

// PathBuilder accumulates resolution steps before they are frozen into a
// ProcessingPath. The resolver creates one per attempt, appends as each
// candidate is probed, and finalizes at the point of failure.
type PathBuilder struct {
	steps     []Step
	finalized bool
}

// NewPathBuilder creates an empty builder.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{steps: make([]Step, 0, 8)}
}

// Append records one attempted step. Appending after Finalize is a
// programmer error.
func (b *PathBuilder) Append(step Step) *PathBuilder {
	if b.finalized {
		panic(fmt.Errorf("issue: append to finalized processing path"))
	}
	b.steps = append(b.steps, step)
	return b
}

func (b *PathBuilder) Len() int {
	return len(b.steps)
}

// Finalize freezes the recorded steps into an immutable ProcessingPath.
// The builder cannot be used afterwards.
func (b *PathBuilder) Finalize() *ProcessingPath {
	if b.finalized {
		panic(fmt.Errorf("issue: processing path finalized twice"))
	}
	b.finalized = true
	steps := make([]Step, len(b.steps))
	copy(steps, b.steps)
	return &ProcessingPath{steps: steps}
}
