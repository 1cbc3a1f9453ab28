package hashing

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const (
	DefaultDimension = 384

	termSaturation = 1.2
	trigramWeight  = 0.5
)

// Embedder produces deterministic feature-hashing vectors locally. Word tokens and their
// character trigrams are hashed into a fixed number of signed buckets, saturated the
// way BM25 saturates term frequency, then L2-normalized.
type Embedder struct {
	dim int
}

func NewEmbedder(dim int) *Embedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &Embedder{dim: dim}
}

func (e *Embedder) Dimension() int {
	return e.dim
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, e.embedOne(text))
	}
	return out, nil
}

func (e *Embedder) embedOne(text string) []float32 {
	termFreq := make(map[string]float64, 64)
	for _, token := range tokenizeAlphaNum(text) {
		termFreq[token]++
		for _, gram := range charTrigrams(token) {
			termFreq["#"+gram] += trigramWeight
		}
	}

	buckets := make([]float64, e.dim)
	for term, tf := range termFreq {
		h := hashToken(term)
		weight := (tf * (termSaturation + 1)) / (tf + termSaturation)
		if h&0x80000000 != 0 {
			weight = -weight
		}
		buckets[int(h%uint32(e.dim))] += weight
	}

	var norm float64
	for _, v := range buckets {
		norm += v * v
	}
	vec := make([]float32, e.dim)
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i, v := range buckets {
		vec[i] = float32(v / norm)
	}
	return vec
}

func charTrigrams(token string) []string {
	padded := []rune("^" + token + "$")
	if len(padded) < 3 {
		return nil
	}
	out := make([]string, 0, len(padded)-2)
	for i := 0; i+3 <= len(padded); i++ {
		out = append(out, string(padded[i:i+3]))
	}
	return out
}

func hashToken(token string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return h.Sum32()
}

func tokenizeAlphaNum(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 24)
	var b strings.Builder
	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}
