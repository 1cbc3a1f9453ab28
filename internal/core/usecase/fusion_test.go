package usecase

import (
	"math"
	"testing"
)

func TestNormalizeScoresRange(t *testing.T) {
	raw := []float64{3, -1, 7, 2.5}
	got := NormalizeScores(raw)
	for i, v := range got {
		if v < 0 || v > 1 {
			t.Fatalf("score %d out of range: %f", i, v)
		}
	}
	if got[2] != 1 {
		t.Fatalf("expected max to map to 1, got %f", got[2])
	}
	if got[1] != 0 {
		t.Fatalf("expected min to map to 0, got %f", got[1])
	}
}

func TestNormalizeScoresDegenerate(t *testing.T) {
	for _, raw := range [][]float64{{0.4, 0.4, 0.4}, {5}, {1, 1 + 1e-12}} {
		for i, v := range NormalizeScores(raw) {
			if v != 0 {
				t.Fatalf("NormalizeScores(%v)[%d] = %f, want 0", raw, i, v)
			}
		}
	}
	if got := NormalizeScores(nil); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}

func TestHybridScoresMatchesWeightedSum(t *testing.T) {
	meta := []float64{0.1, 0.9, 0.5, 0.3}
	content := []float64{0.7, 0.2, 0.2, 0.9}
	weights := [][2]float64{{0.5, 0.5}, {1, 3}, {0, 1}, {-0.5, 2}}

	for _, w := range weights {
		got, err := HybridScores(meta, content, w[0], w[1])
		if err != nil {
			t.Fatalf("HybridScores() error = %v", err)
		}
		m, c := NormalizeScores(meta), NormalizeScores(content)
		for i := range got {
			want := w[0]*m[i] + w[1]*c[i]
			if math.Abs(got[i]-want) > 1e-12 {
				t.Fatalf("weights %v index %d: got %f want %f", w, i, got[i], want)
			}
		}
	}
}

func TestHybridScoresLengthMismatch(t *testing.T) {
	if _, err := HybridScores([]float64{1}, []float64{1, 2}, 0.5, 0.5); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestTopKByScoreStable(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	scores := []float64{0.2, 0.9, 0.5, 0.9, 0.5}

	got, err := TopKByScore(items, scores, 4)
	if err != nil {
		t.Fatalf("TopKByScore() error = %v", err)
	}
	want := []string{"b", "d", "c", "e"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTopKByScoreBounds(t *testing.T) {
	items := []int{1, 2}
	scores := []float64{1, 2}
	for _, tc := range []struct{ k, want int }{{0, 0}, {1, 1}, {2, 2}, {10, 2}, {-1, 0}} {
		got, err := TopKByScore(items, scores, tc.k)
		if err != nil {
			t.Fatalf("TopKByScore() error = %v", err)
		}
		if len(got) != tc.want {
			t.Fatalf("k=%d: expected %d items, got %d", tc.k, tc.want, len(got))
		}
	}
	if _, err := TopKByScore(items, []float64{1}, 1); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
