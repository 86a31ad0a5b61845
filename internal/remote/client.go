// Package remote mirrors store mutations to the sheet-backed endpoint.
//
// The transport is a one-way message send: the endpoint never returns a
// readable response, so delivery is not guaranteed and is never confirmed.
// The design compensates by always pushing the full current collection, so
// repeated or out-of-order sends converge to the same remote state
// (last-write-wins by send order).
package remote

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
)

// Actions the remote endpoint understands.
const (
	ActionUpdateShopping = "updateShopping"
	ActionUpdateExpenses = "updateExpenses"

	// ActionAddExpense is the legacy single-record verb. The endpoint still
	// accepts it, but every local mutation pushes the full collection via
	// ActionUpdateExpenses so sends stay idempotent.
	ActionAddExpense = "addExpense"
)

// Status is the transient send indicator surfaced to observers.
type Status int

const (
	StatusIdle Status = iota
	StatusWorking
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusWorking:
		return "working"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// StatusFunc observes status transitions of the send path.
type StatusFunc func(Status)

// envelope is the wire format of every push.
type envelope struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

// Client performs fire-and-forget pushes. Push never blocks on the network
// and never returns an error; transport failures only flip the status
// indicator. Pushes carry no timeout: a hanging remote delays the indicator,
// never local mutation.
type Client struct {
	mu       sync.Mutex
	endpoint string
	token    string

	httpc    *http.Client
	onStatus StatusFunc
	status   Status
	wg       sync.WaitGroup
}

// NewClient builds a client for the given endpoint. An empty endpoint
// disables pushing entirely.
func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpc:    &http.Client{}, // deliberately no timeout, see Push
	}
}

// OnStatus registers the status observer. Called from push goroutines.
func (c *Client) OnStatus(fn StatusFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStatus = fn
}

// Configure swaps the endpoint and token at runtime (explicit user action).
// In-flight pushes keep the endpoint they started with.
func (c *Client) Configure(endpoint, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpoint = endpoint
	c.token = token
}

// Push mirrors a collection to the remote endpoint, best effort. The payload
// is encoded before Push returns, so callers may mutate their state freely
// afterwards. Multiple pushes can be in flight concurrently; arrival order
// at the remote is not guaranteed.
func (c *Client) Push(action string, data any) {
	c.mu.Lock()
	endpoint, token := c.endpoint, c.token
	c.mu.Unlock()
	if endpoint == "" {
		return
	}

	body, err := json.Marshal(envelope{Action: action, Data: data})
	if err != nil {
		slog.Error("Failed to encode sync payload", "action", action, "error", err)
		c.notify(StatusError)
		return
	}

	c.wg.Add(1)
	go c.send(endpoint, token, action, body)
}

func (c *Client) send(endpoint, token, action string, body []byte) {
	defer c.wg.Done()
	c.notify(StatusWorking)

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("Failed to build sync request", "action", action, "error", err)
		c.notify(StatusError)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Auth-Token", token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Transport failure: transient status only, never propagated and
		// never retried. The next mutation re-sends the full collection.
		slog.Warn("Sync push failed", "action", action, "error", err)
		c.notify(StatusError)
		return
	}
	// The response body is opaque; drain and discard it without
	// interpreting anything, including the status code.
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	slog.Debug("Sync push sent", "action", action, "bytes", len(body))
	c.notify(StatusIdle)
}

// Wait joins all in-flight pushes. Used on shutdown and in tests; the
// mutation path never calls it.
func (c *Client) Wait() {
	c.wg.Wait()
}

// Status reports the most recent send indicator.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Client) notify(s Status) {
	c.mu.Lock()
	c.status = s
	fn := c.onStatus
	c.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}
