package rules

import "testing"

func TestCompatibilityScoreSharedRatio(t *testing.T) {
	a := []string{"hiking", "cooking", "music"}
	b := []string{"hiking", "music", "reading", "gaming", "art"}

	if got := CompatibilityScore(a, b); got != 66 {
		t.Fatalf("unexpected score: got %d want %d", got, 66)
	}
}

func TestCompatibilityScoreSymmetry(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
	}{
		{name: "partial overlap", a: []string{"hiking", "cooking", "music"}, b: []string{"hiking", "music", "reading"}},
		{name: "disjoint", a: []string{"chess"}, b: []string{"poker", "darts"}},
		{name: "subset", a: []string{"art"}, b: []string{"art", "film", "wine"}},
		{name: "one empty", a: nil, b: []string{"art"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if ab, ba := CompatibilityScore(tc.a, tc.b), CompatibilityScore(tc.b, tc.a); ab != ba {
				t.Fatalf("score is not symmetric: %d vs %d", ab, ba)
			}
		})
	}
}

func TestCompatibilityScoreEmptySides(t *testing.T) {
	if got := CompatibilityScore(nil, []string{"hiking"}); got != 0 {
		t.Fatalf("empty left side should score 0, got %d", got)
	}
	if got := CompatibilityScore([]string{"hiking"}, nil); got != 0 {
		t.Fatalf("empty right side should score 0, got %d", got)
	}
	if got := CompatibilityScore(nil, nil); got != 0 {
		t.Fatalf("both empty should score 0, got %d", got)
	}
}

func TestCompatibilityScoreDuplicatesCollapse(t *testing.T) {
	a := []string{"hiking", "hiking", "music"}
	b := []string{"hiking", "music"}

	if got := CompatibilityScore(a, b); got != 100 {
		t.Fatalf("duplicates should collapse before scoring: got %d want %d", got, 100)
	}
}

func TestCompatibilityScoreFullOverlapSubset(t *testing.T) {
	a := []string{"art"}
	b := []string{"art", "film", "wine"}

	if got := CompatibilityScore(a, b); got != 100 {
		t.Fatalf("subset overlap should score against the smaller set: got %d want %d", got, 100)
	}
}
