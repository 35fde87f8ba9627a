package scoring

import "math"

// TermFrequency counts each term and divides by the length of terms.
// An empty input is treated as length 1, yielding an empty map.
func TermFrequency(terms []string) map[string]float64 {
	tf := make(map[string]float64, len(terms))
	for _, t := range terms {
		tf[t]++
	}

	length := float64(len(terms))
	if length == 0 {
		length = 1
	}
	for t, count := range tf {
		tf[t] = count / length
	}
	return tf
}

// InverseDocumentFrequency computes smoothed idf over corpus:
//
//	idf(t) = ln((1 + N) / (1 + df(t))) + 1
//
// where N is the number of documents and df(t) the number containing t.
// Every term seen in any document receives an entry.
func InverseDocumentFrequency(corpus [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{}, len(doc))
		for _, t := range doc {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	n := float64(len(corpus))
	idf := make(map[string]float64, len(df))
	for t, d := range df {
		idf[t] = math.Log((1+n)/(1+float64(d))) + 1
	}
	return idf
}

// Vocabulary deduplicates terms, keeping the first occurrence of each.
func Vocabulary(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	vocab := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		vocab = append(vocab, t)
	}
	return vocab
}

// Project builds a dense tf*idf vector aligned to vocab. A term missing from
// either map weighs 0. The result always has len(vocab) entries.
func Project(tf, idf map[string]float64, vocab []string) []float64 {
	v := make([]float64, len(vocab))
	for i, t := range vocab {
		v[i] = tf[t] * idf[t]
	}
	return v
}
