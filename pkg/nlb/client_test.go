package nlb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessatakuma/API-tools/pkg/upstream"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	mux := http.NewServeMux()
	mux.HandleFunc(searchPath, handler)
	server := httptest.NewServer(mux)
	client := NewClient(server.Client(), &Config{
		Host:     server.Listener.Addr().String(),
		Protocol: "http",
	})
	return client, server.Close
}

func TestSearch(t *testing.T) {
	expected := []Usage{
		{Sentence: "お金を稼ぐのは大変だ。", Source: "ある作品"},
		{Sentence: "生活費を稼ぐ。", Source: "別の作品"},
	}
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var request searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "稼ぐ", request.Query)
		assert.Equal(t, "word", request.SearchType)
		assert.Equal(t, "BCCWJ", request.Corpus)
		assert.Equal(t, 2, request.Page)
		assert.Equal(t, 20, request.PerPage)

		err := json.NewEncoder(w).Encode(&searchResponse{Results: expected})
		assert.NoError(t, err)
	})
	defer closeFn()

	usages, err := client.Search(context.TODO(), "稼ぐ", 2, 20)
	require.NoError(t, err)
	assert.Equal(t, expected, usages)
}

func TestSearchDefaults(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var request searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, DefaultPage, request.Page)
		assert.Equal(t, DefaultPerPage, request.PerPage)
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	defer closeFn()

	usages, err := client.Search(context.TODO(), "稼ぐ", 0, 100)
	require.NoError(t, err)
	assert.Empty(t, usages)
}

func TestSearchUpstreamStatus(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})
	defer closeFn()

	_, err := client.Search(context.TODO(), "稼ぐ", 1, 10)
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusOf(err))
}
