package scoring

// englishStopWords is the closed stop-word set applied by the scoring tokenizer.
var englishStopWords = newWordSet(
	"the", "a", "an", "and", "or", "but", "if", "then", "else", "when", "while", "of", "to", "in", "on", "for",
	"with", "by", "at", "from", "as", "is", "are", "was", "were", "be", "being", "been", "this", "that", "these",
	"those", "it", "its", "into", "over", "under", "about", "you", "your", "we", "our", "they", "their", "i", "me",
	"my", "mine", "he", "she", "his", "her", "them", "us", "do", "did", "done", "can", "could", "should", "would",
	"may", "might", "have", "has", "had", "will", "just", "than", "such", "also", "per", "via", "across",
)

func newWordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord reports whether word belongs to the scoring stop-word list.
// The word must already be lower-cased.
func IsStopWord(word string) bool {
	_, ok := englishStopWords[word]
	return ok
}
