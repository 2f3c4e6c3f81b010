package ojad

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessatakuma/API-tools/pkg/upstream"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	mux := http.NewServeMux()
	mux.HandleFunc(phrasingPath, handler)
	server := httptest.NewServer(mux)
	client := NewClient(server.Client(), &Config{
		Host:     server.Listener.Addr().String(),
		Protocol: "http",
	})
	return client, server.Close
}

func TestPhrasing(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "お金を稼ぐ", r.PostForm.Get("data[Phrasing][text]"))
		assert.Equal(t, "crf", r.PostForm.Get("data[Phrasing][estimation]"))
		_, _ = w.Write([]byte(phrasingPage))
	})
	defer closeFn()

	morae, err := client.Phrasing(context.TODO(), "お金を稼ぐ")
	require.NoError(t, err)
	require.Len(t, morae, 7)
	assert.Equal(t, Mora{Text: "か", Accent: AccentTop}, morae[1])
}

func TestPhrasingUpstreamStatus(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})
	defer closeFn()

	_, err := client.Phrasing(context.TODO(), "test")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusOf(err))
}
