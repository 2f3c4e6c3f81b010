// Package nlb queries the NINJAL-LWP for BCCWJ (NLB) corpus search API
// for real-world usage examples of a word.
package nlb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sessatakuma/API-tools/pkg/upstream"
)

const (
	defaultHost     = "nlb.ninjal.ac.jp"
	defaultProtocol = "https"
	defaultTimeout  = 10 * time.Second
	defaultCorpus   = "BCCWJ"

	searchPath = "/api/v1/search/"

	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 50
)

// Usage is one corpus hit: a sentence and the work it was taken from.
type Usage struct {
	Sentence string `json:"sentence"`
	Source   string `json:"source"`
}

type Config struct {
	// Host specifies remote host to which request will be sent
	Host     string
	Protocol string
	// Corpus selects which corpus the API searches
	Corpus string
}

type Client struct {
	client *http.Client
	config *Config
}

func NewClient(client *http.Client, config *Config) *Client {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if config.Host == "" {
		config.Host = defaultHost
	}
	if config.Protocol == "" {
		config.Protocol = defaultProtocol
	}
	if config.Corpus == "" {
		config.Corpus = defaultCorpus
	}
	return &Client{
		client: client,
		config: config,
	}
}

type searchRequest struct {
	Query      string   `json:"query"`
	SearchType string   `json:"searchType"`
	Corpus     string   `json:"corpus"`
	Pos        []string `json:"pos"`
	Page       int      `json:"page"`
	PerPage    int      `json:"perPage"`
}

type searchResponse struct {
	Results []Usage `json:"results"`
}

// Search returns one page of corpus hits for word. Page and perPage
// fall back to the defaults when out of range.
func (c *Client) Search(ctx context.Context, word string, page, perPage int) ([]Usage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	body, err := json.Marshal(&searchRequest{
		Query:      word,
		SearchType: "word",
		Corpus:     c.config.Corpus,
		Pos:        []string{},
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		return nil, fmt.Errorf("can not assemble request body: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("can not assemble request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	// The API rejects requests that do not look like its own web UI.
	request.Header.Set("Referer", fmt.Sprintf("%s://%s/", c.config.Protocol, c.config.Host))
	request.Header.Set("User-Agent", "Mozilla/5.0")

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, &upstream.StatusError{Code: response.StatusCode}
	}
	var decoded searchResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("can not decode response: %w", err)
	}
	return decoded.Results, nil
}

func (c *Client) searchURL() string {
	u := url.URL{
		Scheme: c.config.Protocol,
		Host:   c.config.Host,
		Path:   searchPath,
	}
	return u.String()
}

func (c *Client) Close(ctx context.Context) error {
	c.client.CloseIdleConnections()
	return nil
}
