package ipc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/tomatoclock/tomato/internal/waybar"
	"github.com/tomatoclock/tomato/timer"
)

const pingTimeout = 250 * time.Millisecond

// Client talks to a daemon over its Unix socket.
type Client struct {
	socket string
	http   *http.Client
}

// NewClient returns a client for the daemon listening at socket.
func NewClient(socket string) *Client {
	dialer := &net.Dialer{}

	return &Client{
		socket: socket,
		http: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
					return dialer.DialContext(ctx, "unix", socket)
				},
			},
		},
	}
}

// Ping reports whether a daemon accepts connections on the socket.
func (c *Client) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	var d net.Dialer

	conn, err := d.DialContext(ctx, "unix", c.socket)
	if err != nil {
		return false
	}

	conn.Close()

	return true
}

// Snapshot returns the daemon's current timer state.
func (c *Client) Snapshot(ctx context.Context) (timer.Snapshot, error) {
	var snap timer.Snapshot

	err := c.do(ctx, http.MethodGet, "/snapshot", nil, &snap)

	return snap, err
}

// Output returns the daemon's current Waybar output.
func (c *Client) Output(ctx context.Context) (waybar.Output, error) {
	var out waybar.Output

	err := c.do(ctx, http.MethodGet, "/output", nil, &out)

	return out, err
}

// SubmitWait sends a command to the daemon and returns the resulting state.
func (c *Client) SubmitWait(ctx context.Context, cmd timer.Command) (timer.Snapshot, error) {
	req := CommandRequest{
		Kind:     string(cmd.Kind),
		Workflow: cmd.Workflow,
		Status:   cmd.Status,
	}

	var snap timer.Snapshot

	err := c.do(ctx, http.MethodPost, "/command", req, &snap)

	return snap, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}

		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, "http://tomato"+path, r)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, syscall.ENOENT) || errors.Is(err, syscall.ECONNREFUSED) {
			return ErrNoDaemon.Wrap(err)
		}

		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			return errDaemon.Fmt(resp.Status)
		}

		return errDaemon.Fmt(e.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding daemon response: %w", err)
	}

	return nil
}
