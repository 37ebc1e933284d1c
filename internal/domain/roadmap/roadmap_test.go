package roadmap

import "testing"

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]Level{
		"advanced":       LevelAdvanced,
		" Intermediate ": LevelIntermediate,
		"BEGINNER":       LevelBeginner,
		"":               LevelBeginner,
		"expert":         LevelBeginner,
	}
	for in, want := range cases {
		if got := NormalizeLevel(in); got != want {
			t.Fatalf("NormalizeLevel(%q): want=%s got=%s", in, want, got)
		}
	}
}

func TestResourceKey(t *testing.T) {
	if got := (Resource{Title: "t", URL: "https://u"}).Key(); got != "https://u" {
		t.Fatalf("Key with url: got=%q", got)
	}
	if got := (Resource{Title: "t"}).Key(); got != "t" {
		t.Fatalf("Key without url: got=%q", got)
	}
}

func TestNeedsEnrichment(t *testing.T) {
	cases := []struct {
		name string
		rm   *Roadmap
		want bool
	}{
		{"nil", nil, true},
		{"no steps", &Roadmap{}, true},
		{"no resources", &Roadmap{Steps: []Step{{Title: "s"}}}, true},
		{"title only", &Roadmap{Steps: []Step{{Resources: []Resource{{Title: "legacy"}}}}}, true},
		{"populated", &Roadmap{Steps: []Step{{Resources: []Resource{{Title: "x", URL: "https://x"}}}}}, false},
	}
	for _, tc := range cases {
		if got := tc.rm.NeedsEnrichment(); got != tc.want {
			t.Fatalf("%s: want=%v got=%v", tc.name, tc.want, got)
		}
	}
}
