package mavensearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestLatestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/solrsearch/select", r.URL.Path)
		assert.Equal(t, `g:"org.simplejavamail" AND a:"simple-java-mail"`, r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("rows"))
		assert.Equal(t, "json", r.URL.Query().Get("wt"))
		_, _ = w.Write([]byte(`{"response":{"numFound":1,"docs":[{"id":"org.simplejavamail:simple-java-mail","latestVersion":"8.12.2"}]}}`))
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL+"/"), WithRetry(fastRetry()))
	v, err := c.LatestVersion(context.Background(), DefaultGroupID, DefaultArtifactID)
	require.NoError(t, err)
	assert.Equal(t, "8.12.2", v)
}

func TestLatestVersion_NotFound(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"response":{"numFound":0,"docs":[]}}`))
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL), WithRetry(fastRetry()))
	_, err := c.LatestVersion(context.Background(), "com.example", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load(), "not found is not retried")
}

func TestLatestVersion_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"response":{"docs":[{"latestVersion":"8.0.0"}]}}`))
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL), WithRetry(fastRetry()))
	v, err := c.LatestVersion(context.Background(), DefaultGroupID, DefaultArtifactID)
	require.NoError(t, err)
	assert.Equal(t, "8.0.0", v)
	assert.Equal(t, int32(3), calls.Load())
}

func TestLatestVersion_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL), WithRetry(fastRetry()))
	_, err := c.LatestVersion(context.Background(), DefaultGroupID, DefaultArtifactID)

	var status *ErrUnexpectedStatus
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusBadRequest, status.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLatestVersion_AllAttemptsFail(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL), WithRetry(fastRetry()))
	_, err := c.LatestVersion(context.Background(), DefaultGroupID, DefaultArtifactID)

	var status *ErrUnexpectedStatus
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusTooManyRequests, status.StatusCode)
	assert.Equal(t, time.Second, status.RetryAfter)
	assert.Equal(t, int32(3), calls.Load())
}

func TestLatestVersion_InvalidBodyRetriedOnce(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL), WithRetry(RetryConfig{MaxAttempts: 5, InitialWait: time.Millisecond}))
	_, err := c.LatestVersion(context.Background(), DefaultGroupID, DefaultArtifactID)

	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLatestVersion_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(WithBaseURL(server.URL), WithRetry(fastRetry()))
	_, err := c.LatestVersion(ctx, DefaultGroupID, DefaultArtifactID)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoff_CappedAtMaxWait(t *testing.T) {
	cfg := RetryConfig{InitialWait: time.Second, MaxWait: 2 * time.Second, Multiplier: 10}
	for attempt := range 5 {
		wait := cfg.backoff(attempt, assert.AnError)
		assert.LessOrEqual(t, wait, 2*time.Second+400*time.Millisecond)
	}
}

func TestNewClient_TimeoutAppliedToCopy(t *testing.T) {
	shared := &http.Client{}

	c := NewClient(WithTimeout(3*time.Second), WithHTTPClient(shared))
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout, "option order does not matter")
	assert.Zero(t, shared.Timeout, "caller's client is not modified")
	assert.NotSame(t, shared, c.httpClient)

	c = NewClient(WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.Zero(t, http.DefaultClient.Timeout)

	c = NewClient()
	assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
}
