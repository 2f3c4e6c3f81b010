// Package jmdict queries the JMdict web frontend for dictionary
// entries and the WWWJDIC example search for sentences. Both live on
// the same host and share one HTTP client.
package jmdict

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gammazero/workerpool"

	"github.com/sessatakuma/API-tools/pkg/upstream"
)

const (
	defaultHost     = "www.edrdg.org"
	defaultProtocol = "https"
	defaultTimeout  = 10 * time.Second

	searchPath  = "/jmwsgi/srchres.py"
	entryPath   = "/jmwsgi/entr.py"
	examplePath = "/cgi-bin/wwwjdic/wwwjdic"

	// Selects the "example search" page of WWWJDIC.
	exampleRawQuery = "1E"
)

var ErrNotFound = errors.New("no matching entries")

type Config struct {
	// ExtraHeader specifies what header will be added to each request
	ExtraHeader map[string]string
	// Host specifies remote host to which request will be sent
	Host     string
	Protocol string
	// MaxWorkers specifies how many worker parse html content of page
	// Zero value mean that it will be equal to number of logical CPU
	MaxWorkers int
}

type Remote struct {
	client *http.Client
	config *Config
	pool   *workerpool.WorkerPool
	p      Parser
}

func NewRemote(client *http.Client, p Parser, config *Config) *Remote {
	if client == nil {
		client = getDefaultRemoteClient()
	}
	if p == nil {
		p = &HTMLParser{}
	}
	if config.Host == "" {
		config.Host = defaultHost
	}
	if config.Protocol == "" {
		config.Protocol = defaultProtocol
	}
	if config.MaxWorkers < 1 {
		config.MaxWorkers = runtime.NumCPU()
	}
	return &Remote{
		client: client,
		config: config,
		pool:   workerpool.New(config.MaxWorkers),
		p:      p,
	}
}

// getDefaultRemoteClient returns default client for remote that ignores
// redirect. A search with a single hit redirects straight to the entry
// page and the redirect itself carries the entry id.
func getDefaultRemoteClient() *http.Client {
	return &http.Client{
		Timeout: defaultTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Lookup searches for word and returns the parsed entry pages of every
// hit. Returns ErrNotFound when nothing matches.
func (q *Remote) Lookup(ctx context.Context, word string) ([]*Entry, error) {
	ids, err := q.search(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	entries := make([]*Entry, 0, len(ids))
	for _, id := range ids {
		entry, err := q.getEntry(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get entry %d: %w", id, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (q *Remote) search(ctx context.Context, word string) ([]int64, error) {
	request, err := q.newRequest(ctx, http.MethodGet, q.newSearchURL(word), "")
	if err != nil {
		return nil, err
	}
	response, err := q.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
		var ids []int64
		// Use pool here, because it's heavy cpu bound task
		q.pool.SubmitWait(func() {
			ids, err = q.p.ParseSearch(response.Body)
		})
		return ids, err
	case http.StatusFound, http.StatusSeeOther, http.StatusMovedPermanently:
		redirect, err := response.Location()
		if err != nil {
			return nil, fmt.Errorf("can not parse redirect url: %w", err)
		}
		if !strings.HasSuffix(redirect.Path, entryPath) {
			return nil, fmt.Errorf("unknown redirect: %s", redirect)
		}
		id, err := strconv.ParseInt(redirect.Query().Get("e"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redirect without entry id: %s", redirect)
		}
		return []int64{id}, nil
	default:
		return nil, &upstream.StatusError{Code: response.StatusCode}
	}
}

func (q *Remote) getEntry(ctx context.Context, id int64) (*Entry, error) {
	request, err := q.newRequest(ctx, http.MethodGet, q.newEntryURL(id), "")
	if err != nil {
		return nil, err
	}
	response, err := q.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, &upstream.StatusError{Code: response.StatusCode}
	}
	var entry *Entry
	q.pool.SubmitWait(func() {
		entry, err = q.p.ParseEntry(response.Body)
	})
	if err != nil {
		return nil, err
	}
	if entry.ID == 0 {
		entry.ID = id
	}
	return entry, nil
}

// Examples fetches the example sentences of the entry id. The word is
// the search key (kanji form or reading), the id picks the right block
// from the result page. Returns ErrNotFound when the page has no
// sentences for the entry.
func (q *Remote) Examples(ctx context.Context, word string, id int64) ([]Sentence, error) {
	form := url.Values{
		"dsrchkey": {word},
		"dicsel":   {"1"},
	}
	request, err := q.newRequest(ctx, http.MethodPost, q.newExampleURL(), form.Encode())
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := q.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, &upstream.StatusError{Code: response.StatusCode}
	}
	var sentences []Sentence
	q.pool.SubmitWait(func() {
		sentences, err = q.p.ParseExamples(response.Body, id)
	})
	if err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return nil, ErrNotFound
	}
	return sentences, nil
}

func (q *Remote) newSearchURL(word string) string {
	searchURL := q.newURL()
	searchURL.Path = searchPath

	v := url.Values{}
	v.Set("s1", "1")
	v.Set("y1", "1")
	v.Set("t1", word)
	v.Set("src", "1")
	v.Set("search", "Search")
	v.Set("svc", "jmdict")
	searchURL.RawQuery = v.Encode()

	return searchURL.String()
}

func (q *Remote) newEntryURL(id int64) string {
	entryURL := q.newURL()
	entryURL.Path = entryPath

	v := url.Values{}
	v.Set("svc", "jmdict")
	v.Set("e", strconv.FormatInt(id, 10))
	entryURL.RawQuery = v.Encode()

	return entryURL.String()
}

func (q *Remote) newExampleURL() string {
	exampleURL := q.newURL()
	exampleURL.Path = examplePath
	exampleURL.RawQuery = exampleRawQuery
	return exampleURL.String()
}

func (q *Remote) newURL() *url.URL {
	return &url.URL{
		Scheme: q.config.Protocol,
		Host:   q.config.Host,
	}
}

func (q *Remote) newRequest(ctx context.Context, method, urlRequest, body string) (*http.Request, error) {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, urlRequest, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("can not form request: %w", err)
	}
	for key, value := range q.config.ExtraHeader {
		req.Header.Add(key, value)
	}
	return req, nil
}

func (q *Remote) Close(ctx context.Context) error {
	q.client.CloseIdleConnections()
	q.pool.StopWait()
	return nil
}
