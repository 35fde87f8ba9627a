package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerms_InterleavesAdjacentBigrams(t *testing.T) {
	terms := Terms([]string{"fast", "api", "docker"})
	assert.Equal(t, []string{"fast", "fast api", "api", "api docker", "docker"}, terms)
	assert.NotContains(t, terms, "fast docker")
}

func TestTerms_BigramsFormAfterStopWordRemoval(t *testing.T) {
	// "with" is removed first, so "python" and "docker" become adjacent.
	terms := DocumentTerms("python with docker")
	assert.Equal(t, []string{"python", "python docker", "docker"}, terms)
}

func TestTerms_SingleAndEmpty(t *testing.T) {
	assert.Equal(t, []string{"go"}, Terms([]string{"go"}))
	assert.Empty(t, Terms(nil))
}
