package rules

// CompatibilityScore rates two interest lists on a 0..100 scale.
//
// Both lists are treated as sets (duplicates collapse). The shared count is
// normalized by the smaller set, so a broadly-tagged user is not penalized
// against a picky one. An empty set on either side scores 0.
func CompatibilityScore(a, b []string) int {
	setA := toSet(a)
	setB := toSet(b)

	base := len(setA)
	if len(setB) < base {
		base = len(setB)
	}
	if base == 0 {
		return 0
	}

	shared := 0
	for interest := range setA {
		if _, ok := setB[interest]; ok {
			shared++
		}
	}

	return shared * 100 / base
}

func toSet(interests []string) map[string]struct{} {
	set := make(map[string]struct{}, len(interests))
	for _, interest := range interests {
		if interest == "" {
			continue
		}
		set[interest] = struct{}{}
	}
	return set
}
