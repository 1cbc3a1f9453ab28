package prompt

import "strings"

const DefaultContextChars = 6000

// Answer renders the synthesis prompt. A blank context switches to the general-knowledge
// prompt so the model still answers when no document was readable.
func Answer(contextText, question string, contextChars int) string {
	if contextChars <= 0 {
		contextChars = DefaultContextChars
	}
	if strings.TrimSpace(contextText) == "" {
		return "The provided documents had no readable text. " +
			"Please answer using your own knowledge and reliable 2025 insurance data.\n\n" +
			"Question: " + question
	}
	return "Answer the question based on this text:\n\n" +
		truncate(contextText, contextChars) +
		"\n\nQuestion: " + question
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
