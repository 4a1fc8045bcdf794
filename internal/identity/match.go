package identity

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	containmentOverlap = 0.6
	jaccardThreshold   = 0.7
)

type verdict int

const (
	undecided verdict = iota
	accept
	reject
)

// pair carries both sides of a comparison through the predicate pipeline.
type pair struct {
	keyA, keyB string
	tokA, tokB map[string]struct{}
}

// matchStage is one independent predicate. Stages run in order and the first
// decisive verdict wins.
type matchStage func(p pair) verdict

var matchPipeline = []matchStage{
	exactKeyStage,
	categoryGuardStage,
	containmentStage,
	jaccardStage,
}

func exactKeyStage(p pair) verdict {
	if p.keyA == p.keyB {
		return accept
	}
	return undecided
}

// categoryGuardStage rejects any fuzzy match between names that land in
// different body-part categories, so "db curl" never matches "db press".
func categoryGuardStage(p pair) verdict {
	ca, cb := categoryOf(p.keyA), categoryOf(p.keyB)
	if ca != "" && cb != "" && ca != cb {
		return reject
	}
	return undecided
}

func containmentStage(p pair) verdict {
	if !containsEither(p.keyA, p.keyB) {
		return undecided
	}
	if overlapRatio(p.tokA, p.tokB) >= containmentOverlap {
		return accept
	}
	return undecided
}

func jaccardStage(p pair) verdict {
	if jaccard(p.tokA, p.tokB) >= jaccardThreshold {
		return accept
	}
	return undecided
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func overlapRatio(a, b map[string]struct{}) float64 {
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	if smaller == 0 {
		return 0
	}
	return float64(intersection(a, b)) / float64(smaller)
}

func jaccard(a, b map[string]struct{}) float64 {
	inter := intersection(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func intersection(a, b map[string]struct{}) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

func (r *Resolver) pairOf(a, b string) pair {
	ka, kb := r.CanonicalKey(a), r.CanonicalKey(b)
	return pair{keyA: ka, keyB: kb, tokA: tokens(ka), tokB: tokens(kb)}
}

// AreSameExercise reports whether a and b name the same exercise. It is
// symmetric: every stage treats both sides identically.
func (r *Resolver) AreSameExercise(a, b string) bool {
	p := r.pairOf(a, b)
	if p.keyA == "" || p.keyB == "" {
		return false
	}
	for _, stage := range matchPipeline {
		switch stage(p) {
		case accept:
			return true
		case reject:
			return false
		}
	}
	return false
}

// FindMatch returns the candidate that names the same exercise as name.
// An exact key match wins; otherwise the fuzzy matches are ranked by token
// similarity, then by edit distance between keys, then by input order.
func (r *Resolver) FindMatch(name string, candidates []string) (string, bool) {
	i := r.findIndex(name, candidates, nil)
	if i < 0 {
		return "", false
	}
	return candidates[i], true
}

// Assign pairs each expected name with at most one candidate. Every
// candidate is consumed by at most one expected name, and exact key matches
// are settled before any fuzzy match so a loose pairing cannot steal an
// exact one. The result holds the candidate index per expected name, or -1.
func (r *Resolver) Assign(expected, candidates []string) []int {
	out := make([]int, len(expected))
	used := make([]bool, len(candidates))
	for i, name := range expected {
		out[i] = -1
		key := r.CanonicalKey(name)
		if key == "" {
			continue
		}
		for j, c := range candidates {
			if !used[j] && r.CanonicalKey(c) == key {
				out[i], used[j] = j, true
				break
			}
		}
	}
	for i, name := range expected {
		if out[i] >= 0 {
			continue
		}
		if j := r.findIndex(name, candidates, used); j >= 0 {
			out[i], used[j] = j, true
		}
	}
	return out
}

func (r *Resolver) findIndex(name string, candidates []string, used []bool) int {
	key := r.CanonicalKey(name)
	if key == "" {
		return -1
	}
	free := func(i int) bool { return used == nil || !used[i] }
	for i, c := range candidates {
		if free(i) && r.CanonicalKey(c) == key {
			return i
		}
	}

	best := -1
	var bestScore float64
	var bestDist int
	for i, c := range candidates {
		if !free(i) || !r.AreSameExercise(name, c) {
			continue
		}
		p := r.pairOf(name, c)
		score := jaccard(p.tokA, p.tokB)
		dist := levenshtein.ComputeDistance(p.keyA, p.keyB)
		if best < 0 || score > bestScore || (score == bestScore && dist < bestDist) {
			best, bestScore, bestDist = i, score, dist
		}
	}
	return best
}
