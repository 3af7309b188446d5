package similarity

import "testing"

func TestJaroWinkler_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"mohammad", "mohammed"},
		{"ali", "omar"},
		{"hassan", "hassan"},
		{"", "hassan"},
	}
	for _, p := range pairs {
		got := JaroWinkler(p[0], p[1])
		if got < 0 || got > 1 {
			t.Fatalf("JaroWinkler(%q,%q) = %v out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestJaroWinkler_Symmetric(t *testing.T) {
	a, b := "mohammad", "mohammed"
	if JaroWinkler(a, b) != JaroWinkler(b, a) {
		t.Fatalf("metric must be symmetric")
	}
}

func TestJaroWinkler_EdgeValues(t *testing.T) {
	if got := JaroWinkler("same", "same"); got != 1 {
		t.Fatalf("identical strings = %v, want 1", got)
	}
	if got := JaroWinkler("", ""); got != 0 {
		t.Fatalf("empty strings carry no evidence, got %v", got)
	}
	if JaroWinkler("mohammad", "mohammed") <= JaroWinkler("mohammad", "zaid") {
		t.Fatalf("near-identical names must outscore unrelated names")
	}
}
