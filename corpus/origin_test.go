package corpus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNewOriginClient_RequiresURL(t *testing.T) {
	_, err := NewOriginClient("")
	assert.Equal(t, ErrOriginURLRequired, err)
}

func TestFetchCorpus_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`{
			"Neural Radiance Fields": {
				"title": "Neural Radiance Fields",
				"authors": ["A. Author"],
				"abstract": "Scene representation."
			}
		}`))
	}))
	defer srv.Close()

	client, err := NewOriginClient(srv.URL, WithRateLimit(rate.Inf))
	require.NoError(t, err)

	papers, err := client.FetchCorpus(context.Background())
	require.NoError(t, err)
	require.Contains(t, papers, "Neural Radiance Fields")
	assert.Equal(t, "Neural Radiance Fields", papers["Neural Radiance Fields"].Title)
	assert.Equal(t, []string{"A. Author"}, papers["Neural Radiance Fields"].Authors)
}

func TestFetchCorpus_Non200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewOriginClient(srv.URL, WithRateLimit(rate.Inf))
	require.NoError(t, err)

	_, err = client.FetchCorpus(context.Background())
	assert.ErrorContains(t, err, "status 503")
}

func TestFetchCorpus_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client, err := NewOriginClient(srv.URL, WithRateLimit(rate.Inf))
	require.NoError(t, err)

	_, err = client.FetchCorpus(context.Background())
	assert.Error(t, err)
}

func TestFetchCorpus_RespectsContextDuringRateWait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewOriginClient(srv.URL, WithRateLimit(rate.Every(time.Hour)))
	require.NoError(t, err)

	// First call consumes the only token
	_, err = client.FetchCorpus(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.FetchCorpus(ctx)
	assert.Error(t, err)
}
