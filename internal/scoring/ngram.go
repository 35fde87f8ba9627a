package scoring

// Terms expands tokens into unigrams interleaved with adjacent-pair bigrams:
// token[i] is followed by "token[i] token[i+1]" whenever token[i+1] exists.
// The order fixes first-occurrence positions for Vocabulary.
func Terms(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	out := make([]string, 0, 2*len(tokens)-1)
	for i, tok := range tokens {
		out = append(out, tok)
		if i+1 < len(tokens) {
			out = append(out, tok+" "+tokens[i+1])
		}
	}
	return out
}

// DocumentTerms tokenizes text with the scoring normalizer and expands it to terms.
func DocumentTerms(text string) []string {
	return Terms(Tokenize(text))
}
