package resolver

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		request string
		want    RequestClass
	}{
		{"./not-existing-file", ClassRelative},
		{"../up", ClassRelative},
		{".", ClassRelative},
		{"..", ClassRelative},
		{"/abs/path", ClassAbsolute},
		{"lodash", ClassPackage},
		{"@scope/pkg", ClassPackage},
		{"https://cdn.example.com/x.js", ClassURI},
		{"data:text/javascript,void 0", ClassURI},
		{"", ClassEmpty},
		{"file.with.dots", ClassPackage},
	}
	for _, c := range cases {
		if got := Classify(c.request); got != c.want {
			t.Fatalf("Classify(%q) = %s, want %s", c.request, got, c.want)
		}
	}
}

func TestClassString(t *testing.T) {
	if got := ClassRelative.String(); got != "relative" {
		t.Fatalf("relative class renders as %q", got)
	}
	if got := ClassPackage.String(); got != "module" {
		t.Fatalf("package class renders as %q", got)
	}
}
