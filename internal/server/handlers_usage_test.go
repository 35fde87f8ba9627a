package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-ranker/internal/quota"
)

func TestUsageStatus(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/ats/score", scorePair, "").Code)

	tests := []struct {
		name      string
		query     string
		feature   string
		used      float64
		remaining float64
	}{
		{name: "default feature", query: "", feature: FeatureScore, used: 1, remaining: 1},
		{name: "score", query: "?feature=score", feature: FeatureScore, used: 1, remaining: 1},
		{name: "coach", query: "?feature=coach", feature: FeatureCoach, used: 0, remaining: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodGet, "/api/usage/status"+tt.query, nil, "")
			require.Equal(t, http.StatusOK, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, true, body["ok"])
			assert.Equal(t, tt.feature, body["feature"])
			assert.Equal(t, tt.used, body["used"])
			assert.Equal(t, tt.remaining, body["remaining"])
			assert.Equal(t, true, body["allowed"])
			assert.Equal(t, "2026-03-01", body["day"])
		})
	}

	// Peeking never consumes.
	w := ts.do(t, http.MethodGet, "/api/usage/status?feature=score", nil, "")
	assert.Equal(t, float64(1), decodeBody(t, w)["used"])
}

func TestUsageStatus_UnknownFeature(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/usage/status?feature=bogus", nil, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeBadRequest, decodeBody(t, w)["error"])
}

func TestUsageStatus_Owner(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, testOwnerEmail, true)

	w := ts.do(t, http.MethodGet, "/api/usage/status", nil, token)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, string(quota.ReasonOwner), body["reason"])
	assert.Equal(t, float64(-1), body["remaining"])
	assert.Equal(t, true, body["unlimited"])
}

func TestUsageConsume_RequiresSignIn(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/usage/consume", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, CodeUnauthorized, decodeBody(t, w)["error"])
}

func TestUsageConsume(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, "user@example.com", false)

	for i := 1; i <= 3; i++ {
		w := ts.do(t, http.MethodPost, "/api/usage/consume", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, FeatureDemo, body["feature"])
		assert.Equal(t, float64(i), body["used"])
	}

	w := ts.do(t, http.MethodPost, "/api/usage/consume", nil, token)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, string(quota.ReasonLimitReached), body["error"])
	assert.Equal(t, float64(3), body["used"])

	require.Len(t, ts.auditor.entries, 3)
	entry := ts.auditor.entries[0]
	assert.Equal(t, "user@example.com", entry.CallerKey)
	assert.Equal(t, "quota.consume", entry.Action)
	detail, ok := entry.Detail.(map[string]quota.Result)
	require.True(t, ok)
	assert.Equal(t, 0, detail["before"].Used)
	assert.Equal(t, 1, detail["after"].Used)

	assert.Equal(t, 3, ts.logs.FilterMessage("audit").Len())
}

func TestUsageConsume_AuditFailureIsNotFatal(t *testing.T) {
	ts := newTestServer(t)
	ts.auditor.err = errors.New("disk full")
	token := ts.tokenFor(t, "user@example.com", false)

	w := ts.do(t, http.MethodPost, "/api/usage/consume", nil, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, ts.logs.FilterMessage("failed to write audit entry").Len())
}

func TestUsageConsume_OwnerUnlimited(t *testing.T) {
	ts := newTestServer(t)
	token := ts.tokenFor(t, testOwnerEmail, true)

	for i := 0; i < 5; i++ {
		w := ts.do(t, http.MethodPost, "/api/usage/consume", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, string(quota.ReasonOwner), decodeBody(t, w)["reason"])
	}
}
