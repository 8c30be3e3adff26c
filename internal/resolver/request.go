package resolver

import "strings"

// RequestClass is the syntactic class of a request string, as parsed from
// the source text.
type RequestClass uint8

const (
	ClassRelative RequestClass = iota
	ClassPackage
	ClassAbsolute
	ClassURI
	ClassEmpty
)

func (c RequestClass) String() string {
	switch c {
	case ClassRelative:
		return "relative"
	case ClassPackage:
		return "module"
	case ClassAbsolute:
		return "absolute"
	case ClassURI:
		return "uri"
	case ClassEmpty:
		return "empty"
	}
	return "unknown"
}

// Classify parses a raw request string into its class.
func Classify(request string) RequestClass {
	switch {
	case request == "":
		return ClassEmpty
	case request == "." || request == "..":
		return ClassRelative
	case strings.HasPrefix(request, "./") || strings.HasPrefix(request, "../"):
		return ClassRelative
	case request[0] == '/':
		return ClassAbsolute
	case containsScheme(request):
		return ClassURI
	default:
		return ClassPackage
	}
}

// containsScheme detects URI-style requests like https://... or data:.
func containsScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			return i > 0
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			continue
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
			continue
		default:
			return false
		}
	}
	return false
}
