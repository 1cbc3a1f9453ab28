package usecase

import (
	"fmt"
	"sort"
)

const (
	normalizeEpsilon     = 1e-9
	DefaultWeightMeta    = 0.5
	DefaultWeightContent = 0.5
	DefaultFinalTopK     = 1
)

// NormalizeScores min-max scales xs into [0,1]. When every score is equal (range below
// epsilon) every output is 0.
func NormalizeScores(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	minScore, maxScore := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < minScore {
			minScore = x
		}
		if x > maxScore {
			maxScore = x
		}
	}
	rangeScore := maxScore - minScore
	if rangeScore < normalizeEpsilon {
		return out
	}
	for i, x := range xs {
		out[i] = (x - minScore) / rangeScore
	}
	return out
}

// HybridScores normalizes both signals independently and mixes them. Weights need not
// sum to one.
func HybridScores(meta, content []float64, wMeta, wContent float64) ([]float64, error) {
	if len(meta) != len(content) {
		return nil, fmt.Errorf("score length mismatch: meta=%d content=%d", len(meta), len(content))
	}
	m := NormalizeScores(meta)
	c := NormalizeScores(content)
	out := make([]float64, len(m))
	for i := range m {
		out[i] = wMeta*m[i] + wContent*c[i]
	}
	return out, nil
}

// TopKByScore returns the min(k, n) items with the highest scores, highest first.
// Equal scores keep their input order.
func TopKByScore[T any](items []T, scores []float64, k int) ([]T, error) {
	if len(items) != len(scores) {
		return nil, fmt.Errorf("items/scores mismatch: %d/%d", len(items), len(scores))
	}
	order := rankIndices(scores)
	if k < len(order) {
		if k < 0 {
			k = 0
		}
		order = order[:k]
	}
	out := make([]T, 0, len(order))
	for _, idx := range order {
		out = append(out, items[idx])
	}
	return out, nil
}

func rankIndices(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	return order
}
