// Package ojad queries the OJAD "suzukikun" prosody tutor for pitch
// accent marks. The service has no machine interface, the phrasing page
// is requested like a browser form and parsed from HTML.
package ojad

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sessatakuma/API-tools/pkg/upstream"
)

const (
	defaultHost     = "www.gavo.t.u-tokyo.ac.jp"
	defaultProtocol = "https"
	defaultTimeout  = 10 * time.Second

	phrasingPath = "/ojad/phrasing/index"
)

type Config struct {
	// Host specifies remote host to which request will be sent
	Host     string
	Protocol string
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
	return &Client{
		client: client,
		config: config,
	}
}

// phrasingForm returns the form values the phrasing page expects. The
// estimation/display switches mirror what the web form submits in its
// "advanced" mode with all accent marks visible.
func phrasingForm(text string) url.Values {
	return url.Values{
		"data[Phrasing][text]":             {text},
		"data[Phrasing][curve]":            {"advanced"},
		"data[Phrasing][accent]":           {"advanced"},
		"data[Phrasing][accent_mark]":      {"all"},
		"data[Phrasing][estimation]":       {"crf"},
		"data[Phrasing][analyze]":          {"true"},
		"data[Phrasing][phrase_component]": {"invisible"},
		"data[Phrasing][param]":            {"invisible"},
		"data[Phrasing][subscript]":        {"visible"},
		"data[Phrasing][jeita]":            {"invisible"},
	}
}

// Phrasing submits text and returns the accent mark of every mora in
// reading order.
func (c *Client) Phrasing(ctx context.Context, text string) ([]Mora, error) {
	form := phrasingForm(text)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.phrasingURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("can not assemble request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, &upstream.StatusError{Code: response.StatusCode}
	}
	morae, err := ParsePhrasingHTML(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse phrasing page: %w", err)
	}
	return morae, nil
}

func (c *Client) phrasingURL() string {
	u := url.URL{
		Scheme: c.config.Protocol,
		Host:   c.config.Host,
		Path:   phrasingPath,
	}
	return u.String()
}

func (c *Client) Close(ctx context.Context) error {
	c.client.CloseIdleConnections()
	return nil
}
