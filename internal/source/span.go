package source

import "fmt"

// Span is a weak reference to a byte range inside a file. It never owns
// file content; resolving it back to text requires the owning FileSet.
type Span struct {
	File  FileID
	Start uint32 // byte offset, inclusive
	End   uint32 // byte offset, exclusive
}

// IsZero reports whether the span carries no location at all. Issues
// without a source anchor use the zero Span.
func (s Span) IsZero() bool {
	return s == Span{}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover extends the span to include other. Spans in different files are
// left untouched.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
