package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
)

func get(t *testing.T, h http.Handler, method string, header map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, config.RouteFeed, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Result()
}

func TestFeed_NotReady(t *testing.T) {
	resp := get(t, NewFeedServer(0).Handler(), http.MethodGet, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
}

func TestFeed_ServesLatestSnapshot(t *testing.T) {
	srv := NewFeedServer(0)
	srv.Publish([]byte("V1"))
	srv.Publish([]byte(config.StubVCalendar))

	resp := get(t, srv.Handler(), http.MethodGet, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, config.StubVCalendar, string(body))
}

func TestFeed_ETag(t *testing.T) {
	srv := NewFeedServer(0)
	srv.Publish([]byte("DATA"))

	first := get(t, srv.Handler(), http.MethodGet, nil)
	_ = first.Body.Close()
	etag := first.Header.Get(config.HeaderETag)
	require.NotEmpty(t, etag)

	second := get(t, srv.Handler(), http.MethodGet, map[string]string{config.HeaderIfNoneMatch: etag})
	defer func() { _ = second.Body.Close() }()
	assert.Equal(t, http.StatusNotModified, second.StatusCode)
	body, _ := io.ReadAll(second.Body)
	assert.Empty(t, body)

	srv.Publish([]byte("DATA-2"))
	third := get(t, srv.Handler(), http.MethodGet, map[string]string{config.HeaderIfNoneMatch: etag})
	defer func() { _ = third.Body.Close() }()
	assert.Equal(t, http.StatusOK, third.StatusCode, "A new snapshot invalidates the old ETag")
}

func TestFeed_Methods(t *testing.T) {
	srv := NewFeedServer(0)
	srv.Publish([]byte("DATA"))

	head := get(t, srv.Handler(), http.MethodHead, nil)
	defer func() { _ = head.Body.Close() }()
	assert.Equal(t, http.StatusOK, head.StatusCode)
	body, _ := io.ReadAll(head.Body)
	assert.Empty(t, body)

	post := get(t, srv.Handler(), http.MethodPost, nil)
	defer func() { _ = post.Body.Close() }()
	assert.Equal(t, http.StatusMethodNotAllowed, post.StatusCode)
	assert.Equal(t, config.AllowedMethods, post.Header.Get(config.HeaderAllow))
}

func TestFeed_ConcurrentPublish(t *testing.T) {
	srv := NewFeedServer(0)
	h := srv.Handler()
	srv.Publish([]byte("seed"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			srv.Publish([]byte(fmt.Sprintf("v%d", i)))
		}(i)
		go func() {
			defer wg.Done()
			resp := get(t, h, http.MethodGet, nil)
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}()
	}
	wg.Wait()
}

func TestStart_RequiresPort(t *testing.T) {
	err := NewFeedServer(0).Start(context.Background())
	assert.EqualError(t, err, config.ErrPortRequired)
}

func TestStart_ServesAndShutsDown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	srv := NewFeedServer(port)
	srv.Publish([]byte(config.StubVCalendar))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	url := "http://" + srv.Addr() + config.RouteFeed
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(config.ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
