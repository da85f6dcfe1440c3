package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_FetchAndParse(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(samplePlaylist))
	}))
	defer srv.Close()

	f := New("LiveChannels/1.0", 5*time.Second)

	t.Run("default user agent", func(t *testing.T) {
		channels, err := f.FetchAndParse(context.Background(), srv.URL, "")
		require.NoError(t, err)
		assert.Len(t, channels, 4)
		assert.Equal(t, "LiveChannels/1.0", gotUA)
	})

	t.Run("source user agent override", func(t *testing.T) {
		_, err := f.FetchAndParse(context.Background(), srv.URL, "okhttp/4.9")
		require.NoError(t, err)
		assert.Equal(t, "okhttp/4.9", gotUA)
	})
}

func TestFetcher_FetchAndParse_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New("", time.Second).FetchAndParse(context.Background(), srv.URL, "")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "HTTP 404", err.Error())
}

func TestFetcher_FetchAndParse_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New("", 0).FetchAndParse(ctx, srv.URL, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFetcher_FetchAndParse_BadURL(t *testing.T) {
	_, err := New("", time.Second).FetchAndParse(context.Background(), "://bad", "")
	assert.Error(t, err)
}
