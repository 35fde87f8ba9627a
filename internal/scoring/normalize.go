// Package scoring implements the deterministic job/candidate similarity engine:
// tokenization, unigram+bigram extraction, two-document TF-IDF weighting,
// cosine scoring and match/gap ranking.
package scoring

import (
	"strings"
	"unicode"
)

// Normalizer turns raw text into an ordered sequence of tokens.
type Normalizer struct {
	// Allowed lists the symbols kept in addition to a-z, 0-9 and whitespace.
	Allowed string
	// StopWords are dropped after splitting. Nil disables stop-word filtering.
	StopWords map[string]struct{}
	// FoldQuotes maps curly quotes to their straight forms before filtering.
	FoldQuotes bool
	// TrimTrailingDots strips sentence-final periods ("docker." -> "docker")
	// while leaving inner and leading dots ("node.js", ".net") intact.
	TrimTrailingDots bool
}

// ScoringNormalizer is the tokenizer used on the scoring path.
// Its allowlist must not change; scores depend on it.
var ScoringNormalizer = Normalizer{
	Allowed:          "+.#-_/",
	StopWords:        englishStopWords,
	FoldQuotes:       true,
	TrimTrailingDots: true,
}

// CoachingNormalizer is the looser tokenizer used to infer matches and gaps
// for fallback coaching. It keeps stop-words.
var CoachingNormalizer = Normalizer{
	Allowed:          "+#.-",
	TrimTrailingDots: true,
}

var quoteFolder = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// Tokens lower-cases text, blanks out disallowed characters, splits on
// whitespace and drops stop-words. The result never contains empty strings.
func (n Normalizer) Tokens(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.ToLower(text)
	if n.FoldQuotes {
		text = quoteFolder.Replace(text)
	}

	cleaned := strings.Map(func(r rune) rune {
		if n.keeps(r) {
			return r
		}
		return ' '
	}, text)

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		if n.TrimTrailingDots {
			f = strings.TrimRight(f, ".")
			if f == "" {
				continue
			}
		}
		if _, stop := n.StopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func (n Normalizer) keeps(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	case r < unicode.MaxASCII && strings.ContainsRune(n.Allowed, r):
		return true
	}
	return false
}

// Tokenize applies ScoringNormalizer to text.
func Tokenize(text string) []string {
	return ScoringNormalizer.Tokens(text)
}
