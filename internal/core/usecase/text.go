package usecase

import (
	"strings"
	"unicode"
)

var stopwords = toSet(
	"a", "about", "an", "and", "any", "are", "as", "at", "be", "been", "being", "but", "by",
	"can", "could", "did", "do", "does", "for", "from", "had", "has", "have", "how", "i",
	"if", "in", "into", "is", "it", "its", "may", "me", "might", "my", "of", "on", "or",
	"our", "should", "so", "than", "that", "the", "their", "them", "there", "these", "they",
	"this", "those", "to", "under", "was", "we", "were", "what", "when", "where", "which",
	"who", "why", "will", "with", "would", "you", "your",
)

func toSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

// queryTokens lower-cases text, splits it on word boundaries and drops stop-words.
func queryTokens(text string) []string {
	tokens := splitAlphaNumLower(text)
	out := tokens[:0]
	for _, t := range tokens {
		if _, ok := stopwords[t]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CleanQuery is the stop-word-free, lower-cased form of a question used by both rankers.
func CleanQuery(question string) string {
	return strings.Join(queryTokens(question), " ")
}

func splitAlphaNumLower(s string) []string {
	if s == "" {
		return nil
	}

	tokens := make([]string, 0, 16)
	var b strings.Builder
	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
