package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"sharkhome/internal/core"
)

// Reader bootstraps local state from the endpoint's read side. Unlike
// pushes, reads are acknowledged plain GETs, so retrying them is safe.
type Reader struct {
	endpoint string
	httpc    *retryablehttp.Client
}

func NewReader(endpoint string) *Reader {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil
	return &Reader{endpoint: endpoint, httpc: rc}
}

// FetchShoppingList returns the remote shopping list, or nil when the
// endpoint is unset or answers with anything that is not a JSON array.
func (r *Reader) FetchShoppingList(ctx context.Context) ([]core.ShoppingItem, error) {
	var items []core.ShoppingItem
	if err := r.fetch(ctx, "getShoppingList", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchExpenses returns the remote expense collection under the same
// non-array tolerance.
func (r *Reader) FetchExpenses(ctx context.Context) ([]core.Expense, error) {
	var expenses []core.Expense
	if err := r.fetch(ctx, "getExpenses", &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// fetch GETs ?action=<action> and decodes a JSON array into out. A non-array
// or undecodable body is ignored without error; out stays nil.
func (r *Reader) fetch(ctx context.Context, action string, out any) error {
	if r.endpoint == "" {
		return nil
	}

	u, err := url.Parse(r.endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("action", action)
	u.RawQuery = q.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", action, err)
	}

	if !looksLikeArray(body) {
		slog.Debug("Ignoring non-array bootstrap response", "action", action)
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		slog.Warn("Ignoring undecodable bootstrap response", "action", action, "error", err)
		return nil
	}
	return nil
}

func looksLikeArray(body []byte) bool {
	for _, b := range body {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
