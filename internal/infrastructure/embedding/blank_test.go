package embedding

import (
	"testing"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

func TestSplitBlankAndScatter(t *testing.T) {
	idx, kept := SplitBlank([]string{"", "deductible", "  \n", "copay"})
	if len(idx) != 2 || idx[0] != 1 || idx[1] != 3 || kept[0] != "deductible" || kept[1] != "copay" {
		t.Fatalf("unexpected split %v %v", idx, kept)
	}

	out, err := Scatter(4, idx, [][]float32{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}
	if len(out) != 4 || out[1][0] != 1 || out[3][1] != 4 {
		t.Fatalf("unexpected scatter %v", out)
	}
	for _, pos := range []int{0, 2} {
		if len(out[pos]) != 2 || out[pos][0] != 0 || out[pos][1] != 0 {
			t.Fatalf("expected zero vector at %d, got %v", pos, out[pos])
		}
	}
}

func TestScatterMismatch(t *testing.T) {
	if _, err := Scatter(2, []int{0}, [][]float32{{1}, {2}}); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestZeros(t *testing.T) {
	out, err := Zeros(2, 3)
	if err != nil || len(out) != 2 || len(out[1]) != 3 {
		t.Fatalf("unexpected Zeros() = %v, %v", out, err)
	}
	if _, err := Zeros(2, 0); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown dimension, got %v", err)
	}
}
