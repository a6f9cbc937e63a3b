package ogmeta

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_SendsCrawlerHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>ok</title></head></html>`))
	}))
	defer srv.Close()

	page, err := NewFetcher(time.Second).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.True(t, page.OK())
	assert.True(t, page.IsHTML())
	assert.Contains(t, string(page.Body), "<title>ok</title>")
	assert.Equal(t, GooglebotUserAgent, gotUA)
	assert.Equal(t, "text/html", gotAccept)
}

func TestFetcher_NonSuccessStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	page, err := NewFetcher(time.Second).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)
	assert.False(t, page.OK())
}

func TestFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewFetcher(50*time.Millisecond).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestFetcher_ConnectionRefusedIsNotTimeout(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewFetcher(time.Second).Fetch(context.Background(), addr)
	require.Error(t, err)
	assert.False(t, IsTimeout(err))
}

func TestFetcher_RefusedURLMentioningTimeoutIsNotTimeout(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewFetcher(time.Second).Fetch(context.Background(), addr+"/posts/handling-timeout-errors")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout-errors")
	assert.False(t, IsTimeout(err))
}

func TestIsTimeout(t *testing.T) {
	assert.False(t, IsTimeout(nil))
	assert.True(t, IsTimeout(fmt.Errorf("fetch: %w", context.DeadlineExceeded)))
	assert.False(t, IsTimeout(errors.New("dial tcp timeout.example.com: connection refused")))
}

func TestFetcher_RejectsNonHTTPURLs(t *testing.T) {
	f := NewFetcher(time.Second)
	for _, raw := range []string{"", "example.com", "ftp://example.com/x", "http://", "%zz"} {
		_, err := f.Fetch(context.Background(), raw)
		assert.True(t, errors.Is(err, ErrInvalidURL), raw)
	}
}
