package judge

import (
	"path"
	"strings"
)

// Weights balance the file name and directory parts of the weighted judge.
type Weights struct {
	FilenameWeight float64
	PathWeight     float64
}

// DefaultWeights favor file name similarity by an order of magnitude.
var DefaultWeights = Weights{FilenameWeight: 10.0, PathWeight: 1.0}

// Weighted scores the file name stem and the directory separately:
//
//	FilenameWeight*ratio(stems) + PathWeight*ratio(dirs)
//
// where ratio(a, b) = (l/len(a)) * (l/len(b)) for the longest common substring
// length l. Scores are not bounded by 1.
type Weighted struct {
	Weights Weights
}

// Name implements Judge
func (Weighted) Name() string { return NameWeighted }

// Score implements Judge. A path without a usable file name ("", "/", "..")
// on either side scores 0.
func (w Weighted) Score(query, candidate string) (float64, error) {
	if candidate == "" {
		return 0, emptyCandidate("judge.Weighted.Score")
	}

	qDir, qStem, ok := splitStem(query)
	if !ok {
		return 0, nil
	}
	cDir, cStem, ok := splitStem(candidate)
	if !ok {
		return 0, nil
	}

	return w.Weights.FilenameWeight*SimilarityRatio(qStem, cStem) +
		w.Weights.PathWeight*SimilarityRatio(qDir, cDir), nil
}

// SimilarityRatio multiplies the coverage of the longest common substring in
// both strings. It is 0 when either string is empty.
func SimilarityRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	l, na, nb := commonLength(a, b)
	n := float64(l)
	return (n / float64(na)) * (n / float64(nb))
}

// splitStem returns the parent directory and the file name without its final
// extension.
func splitStem(p string) (dir, stem string, ok bool) {
	base := path.Base(p)
	switch base {
	case ".", "..", "/":
		return "", "", false
	}
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		dir = p[:i]
	}
	stem = base
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		stem = base[:i]
	}
	return dir, stem, true
}
