// Package yahoo implements a client for the Yahoo Japan linguistic
// API (JLP). Only the FuriganaService endpoint is used.
package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sessatakuma/API-tools/pkg/upstream"
)

const (
	defaultHost     = "jlp.yahooapis.jp"
	defaultProtocol = "https"
	defaultGrade    = 1
	defaultTimeout  = 10 * time.Second

	furiganaPath   = "/FuriganaService/V2/furigana"
	furiganaMethod = "jlp.furiganaservice.furigana"

	// The service ignores the JSON-RPC id, any constant will do.
	requestID = "1234-1"
)

var ErrMissingAppID = errors.New("yahoo application id is not configured")

type Config struct {
	// AppID is the Yahoo application id sent with every request
	AppID string
	// Host specifies remote host to which request will be sent
	Host     string
	Protocol string
	// Grade selects how aggressively the service attaches furigana,
	// grade 1 covers everything above first-grade kanji
	Grade int
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
	if config.Grade < 1 {
		config.Grade = defaultGrade
	}
	return &Client{
		client: client,
		config: config,
	}
}

type rpcRequest struct {
	ID      string    `json:"id"`
	Version string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	Q     string `json:"q"`
	Grade int    `json:"grade"`
}

type rpcResponse struct {
	ID      string    `json:"id"`
	Version string    `json:"jsonrpc"`
	Result  rpcResult `json:"result"`
	Error   *rpcError `json:"error"`
}

type rpcResult struct {
	Word []Word `json:"word"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("upstream rpc error %d: %s", e.Code, e.Message)
}

// Furigana segments text into words and attaches furigana readings.
func (c *Client) Furigana(ctx context.Context, text string) ([]Word, error) {
	if c.config.AppID == "" {
		return nil, ErrMissingAppID
	}
	body, err := json.Marshal(&rpcRequest{
		ID:      requestID,
		Version: "2.0",
		Method:  furiganaMethod,
		Params: rpcParams{
			Q:     text,
			Grade: c.config.Grade,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("can not assemble request body: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.furiganaURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("can not assemble request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("User-Agent", "Yahoo AppID: "+c.config.AppID)

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, &upstream.StatusError{Code: response.StatusCode}
	}
	var decoded rpcResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("can not decode response: %w", err)
	}
	if decoded.Error != nil {
		return nil, decoded.Error
	}
	return decoded.Result.Word, nil
}

func (c *Client) furiganaURL() string {
	u := url.URL{
		Scheme: c.config.Protocol,
		Host:   c.config.Host,
		Path:   furiganaPath,
	}
	return u.String()
}

func (c *Client) Close(ctx context.Context) error {
	c.client.CloseIdleConnections()
	return nil
}
