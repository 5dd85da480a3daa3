package judge

import (
	"github.com/hbollon/go-edlib"
)

// Fuzzy scores with Jaro-Winkler similarity over the whole path, which
// rewards shared prefixes more than the substring judge does.
type Fuzzy struct{}

// Name implements Judge
func (Fuzzy) Name() string { return NameFuzzy }

// Score implements Judge
func (Fuzzy) Score(query, candidate string) (float64, error) {
	if candidate == "" {
		return 0, emptyCandidate("judge.Fuzzy.Score")
	}
	if query == candidate {
		return 1.0, nil
	}
	if query == "" {
		return 0, nil
	}

	score, err := edlib.StringsSimilarity(query, candidate, edlib.JaroWinkler)
	if err != nil {
		return 0, err
	}
	return float64(score), nil
}
