package kvstore

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/billfold/billfold/internal/config"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/sentry"
	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"
)

// Decode numbers as json.Number so monetary fields survive the trip
// into exact decimals without a float64 detour.
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Client talks to the remote record store over HTTP. Retry policy
// lives here, at the store boundary; the engines above never retry.
type Client struct {
	http      *retryablehttp.Client
	baseURL   string
	apiKey    string
	pageLimit int
	logger    *logger.Logger
	sentry    *sentry.Service
}

// NewClient creates a record store client from configuration.
func NewClient(cfg *config.Configuration, log *logger.Logger, sentrySvc *sentry.Service) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.Logger = nil

	return &Client{
		http:      httpClient,
		baseURL:   cfg.Store.BaseURL,
		apiKey:    cfg.Store.APIKey,
		pageLimit: cfg.Store.PageLimit,
		logger:    log,
		sentry:    sentrySvc,
	}
}

type queryRequest struct {
	Limit int    `json:"limit,omitempty"`
	Last  string `json:"last,omitempty"`
}

type queryResponse struct {
	Items  []Record `json:"items"`
	Paging struct {
		Last string `json:"last"`
	} `json:"paging"`
}

// LoadAll drains the collection page by page. A single query returns at
// most one page; stopping there would silently truncate every report,
// so the cursor is followed until the store stops returning one.
func (c *Client) LoadAll(ctx context.Context, collection string) ([]Record, error) {
	var records []Record
	last := ""

	for {
		body, err := json.Marshal(queryRequest{Limit: c.pageLimit, Last: last})
		if err != nil {
			return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
		}

		respBody, err := c.send(ctx, http.MethodPost,
			fmt.Sprintf("%s/%s/query", c.baseURL, collection), body)
		if err != nil {
			return nil, err
		}

		var page queryResponse
		if err := json.Unmarshal(respBody, &page); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Record store returned a malformed page").
				Mark(ierr.ErrStore)
		}

		records = append(records, page.Items...)
		if page.Paging.Last == "" {
			return records, nil
		}
		last = page.Paging.Last
	}
}

func (c *Client) Put(ctx context.Context, collection string, record Record) error {
	body, err := json.Marshal(map[string]any{"items": []Record{record}})
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	_, err = c.send(ctx, http.MethodPut,
		fmt.Sprintf("%s/%s/items", c.baseURL, collection), body)
	return err
}

func (c *Client) Update(ctx context.Context, collection, key string, fields Record) error {
	body, err := json.Marshal(map[string]any{"set": fields})
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	_, err = c.send(ctx, http.MethodPatch,
		fmt.Sprintf("%s/%s/items/%s", c.baseURL, collection, key), body)
	return err
}

func (c *Client) Delete(ctx context.Context, collection, key string) error {
	_, err := c.send(ctx, http.MethodDelete,
		fmt.Sprintf("%s/%s/items/%s", c.baseURL, collection, key), nil)
	return err
}

func (c *Client) send(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	span, spanCtx := c.sentry.StartStoreSpan(ctx, fmt.Sprintf("kvstore.%s", method), map[string]interface{}{
		"url": url,
	})
	if span != nil {
		defer span.Finish()
		ctx = spanCtx
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, rawBody)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Record store is unreachable").
			Mark(ierr.ErrStore)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read record store response").
			Mark(ierr.ErrStore)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ierr.NewError("record not found").
			WithHintf("No such record at %s", url).
			Mark(ierr.ErrNotFound)
	case resp.StatusCode >= 400:
		c.logger.Errorw("record store request failed",
			"method", method,
			"url", url,
			"status", resp.StatusCode)
		return nil, ierr.NewError("record store request failed").
			WithHintf("Record store responded with status %d", resp.StatusCode).
			Mark(ierr.ErrStore)
	}

	return respBody, nil
}
