package embedding

import (
	"fmt"
	"strings"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

// SplitBlank returns the positions and values of texts that have visible characters.
// Hosted embedding APIs reject empty inputs, so adapters send only these.
func SplitBlank(texts []string) ([]int, []string) {
	idx := make([]int, 0, len(texts))
	kept := make([]string, 0, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		idx = append(idx, i)
		kept = append(kept, t)
	}
	return idx, kept
}

// Scatter places vectors back at idx in a result of length n. The other positions get
// zero vectors, which score 0 under cosine similarity.
func Scatter(n int, idx []int, vectors [][]float32) ([][]float32, error) {
	if len(idx) != len(vectors) {
		return nil, fmt.Errorf("scatter: %d positions for %d vectors", len(idx), len(vectors))
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("scatter: no vectors to size blank inputs")
	}
	dim := len(vectors[0])
	out := make([][]float32, n)
	for i, pos := range idx {
		out[pos] = vectors[i]
	}
	for i := range out {
		if out[i] == nil {
			out[i] = make([]float32, dim)
		}
	}
	return out, nil
}

// Zeros returns n zero vectors of dim, or ErrInvalidInput when dim is unknown.
func Zeros(n, dim int) ([][]float32, error) {
	if dim <= 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "embed", fmt.Errorf("all %d inputs are blank", n))
	}
	out := make([][]float32, n)
	for i := range out {
		out[i] = make([]float32, dim)
	}
	return out, nil
}
