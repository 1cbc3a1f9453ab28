package usecase

import (
	"math"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

const DefaultLexicalTopK = 3

type BM25Params struct {
	K1 float64
	B  float64
}

func DefaultBM25Params() BM25Params {
	return BM25Params{K1: 1.5, B: 0.75}
}

func (p BM25Params) normalize() BM25Params {
	def := DefaultBM25Params()
	if p.K1 <= 0 {
		p.K1 = def.K1
	}
	if p.B < 0 || p.B > 1 {
		p.B = def.B
	}
	return p
}

// BM25Scores scores each tokenized document against the query tokens, using the
// documents themselves as the corpus. idf is ln(1 + (N-n+0.5)/(n+0.5)), so it never
// goes negative.
func BM25Scores(query []string, docs [][]string, params BM25Params) []float64 {
	params = params.normalize()
	scores := make([]float64, len(docs))
	if len(docs) == 0 || len(query) == 0 {
		return scores
	}

	termFreqs := make([]map[string]int, len(docs))
	docFreq := make(map[string]int)
	totalLen := 0
	for i, doc := range docs {
		tf := make(map[string]int, len(doc))
		for _, tok := range doc {
			tf[tok]++
		}
		for tok := range tf {
			docFreq[tok]++
		}
		termFreqs[i] = tf
		totalLen += len(doc)
	}

	n := float64(len(docs))
	avgLen := float64(totalLen) / n
	if avgLen == 0 {
		avgLen = 1
	}

	for i, doc := range docs {
		docLen := float64(len(doc))
		var score float64
		for _, term := range query {
			freq := float64(termFreqs[i][term])
			if freq == 0 {
				continue
			}
			df := float64(docFreq[term])
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			denom := freq + params.K1*(1-params.B+params.B*docLen/avgLen)
			score += idf * freq * (params.K1 + 1) / denom
		}
		scores[i] = score
	}
	return scores
}

// LexicalTopK keeps the k candidates whose title, description and snippets best match
// the cleaned question. It returns the surviving indices into candidates together with
// the raw BM25 score of every candidate.
func LexicalTopK(question string, candidates []domain.SearchCandidate, k int, params BM25Params) ([]int, []float64) {
	if k <= 0 {
		k = DefaultLexicalTopK
	}
	docs := make([][]string, len(candidates))
	for i, c := range candidates {
		docs[i] = splitAlphaNumLower(c.LexicalText())
	}
	scores := BM25Scores(queryTokens(question), docs, params)

	order := rankIndices(scores)
	if len(order) > k {
		order = order[:k]
	}
	return order, scores
}
