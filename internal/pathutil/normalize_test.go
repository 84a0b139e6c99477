package pathutil

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"a/b/":    "/a/b",
		"/a/./b":  "/a/b",
		"/a/../b": "/b",
		"/../..":  "/",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join("/", "a"); got != "/a" {
		t.Fatalf("Join root: got %q", got)
	}
	if got := Join("/a", "e"); got != "/a/e" {
		t.Fatalf("Join nested: got %q", got)
	}
}
