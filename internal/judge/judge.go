// Package judge scores how plausibly a candidate path is the alternate of a
// query path.
//
// The default judge measures how much of the candidate is echoed, as one
// contiguous run, inside the query:
//
//	score = len(longest common substring) / len(candidate)
//
// A short candidate fully contained in a long query scores 1.0, while a long
// candidate sharing only a fragment scores low. Lengths are counted in runes,
// or in bytes when either path is not valid UTF-8.
package judge

import (
	"errors"
	"fmt"
	"unicode/utf8"

	alterrors "github.com/standardbeagle/alt/internal/errors"
)

// ErrEmptyCandidate is wrapped by the contract error returned for an empty
// candidate. Candidates are non-empty paths by construction of every source.
var ErrEmptyCandidate = errors.New("empty candidate")

// Judge scores a query against a single candidate.
type Judge interface {
	Name() string
	Score(query, candidate string) (float64, error)
}

// Names of the built-in judges accepted by ByName.
const (
	NameSubstring = "substring"
	NameWeighted  = "weighted"
	NameFuzzy     = "fuzzy"
)

// Names lists the built-in judges in the order help text shows them.
var Names = []string{NameSubstring, NameWeighted, NameFuzzy}

// ByName resolves a built-in judge. An empty name selects the substring judge.
// Weights only apply to the weighted judge.
func ByName(name string, weights Weights) (Judge, error) {
	switch name {
	case "", NameSubstring:
		return Substring{}, nil
	case NameWeighted:
		return Weighted{Weights: weights}, nil
	case NameFuzzy:
		return Fuzzy{}, nil
	}
	return nil, fmt.Errorf("unknown judge %q (want one of %v)", name, Names)
}

// Substring is the longest-common-substring coverage judge.
type Substring struct{}

// Name implements Judge
func (Substring) Name() string { return NameSubstring }

// Score implements Judge
func (Substring) Score(query, candidate string) (float64, error) {
	return Score(query, candidate)
}

// Score returns the share of candidate covered by its longest common
// substring with query. The result lies in [0, 1] and is 1 exactly when
// candidate appears verbatim inside query.
func Score(query, candidate string) (float64, error) {
	if candidate == "" {
		return 0, emptyCandidate("judge.Score")
	}
	length, _, n := commonLength(query, candidate)
	return float64(length) / float64(n), nil
}

// FindLongestCommonSubstring returns the longest run of runes appearing
// contiguously in both a and b. When several runs tie, the one ending first
// in a is returned. Invalid UTF-8 on either side is compared byte by byte.
func FindLongestCommonSubstring(a, b string) string {
	if !utf8.ValidString(a) || !utf8.ValidString(b) {
		end, length := longestCommonSubstring([]byte(a), []byte(b))
		return a[end-length : end]
	}
	ra := []rune(a)
	end, length := longestCommonSubstring(ra, []rune(b))
	return string(ra[end-length : end])
}

// commonLength returns the longest common substring length of a and b along
// with both lengths, all in runes. Invalid UTF-8 decodes to U+FFFD, which
// would make distinct bytes equal, so such inputs are measured in bytes.
func commonLength(a, b string) (length, na, nb int) {
	if !utf8.ValidString(a) || !utf8.ValidString(b) {
		_, length = longestCommonSubstring([]byte(a), []byte(b))
		return length, len(a), len(b)
	}
	ra, rb := []rune(a), []rune(b)
	_, length = longestCommonSubstring(ra, rb)
	return length, len(ra), len(rb)
}

// longestCommonSubstring fills dp[i][j], the length of the common suffix of
// a[:i] and b[:j], and returns the end offset in a and length of the maximum.
// Only rows i-1 and i are live, so scratch space is O(len(b)).
func longestCommonSubstring[T rune | byte](a, b []T) (end, length int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] != b[j-1] {
				curr[j] = 0
				continue
			}
			curr[j] = prev[j-1] + 1
			if curr[j] > length {
				length = curr[j]
				end = i
			}
		}
		prev, curr = curr, prev
	}
	return end, length
}

func emptyCandidate(op string) error {
	return alterrors.NewContractError(op, "candidate must be a non-empty path", ErrEmptyCandidate)
}
