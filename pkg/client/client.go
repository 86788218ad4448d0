// Package client talks to a limeade server. Every operation is bounded by
// a fixed overall timeout and none are retried.
package client

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"limeade/pkg/errors"
	"limeade/pkg/transport"
)

const (
	// DefaultTimeout bounds each operation, body transfer included.
	DefaultTimeout = 30 * time.Second

	DefaultUserAgent = "limeade/1.0"

	// maxErrorBody caps how much of a failure response is kept.
	maxErrorBody = 4 << 10
)

type Client struct {
	http      *http.Client
	endpoint  Endpoint
	userAgent string
}

type Option func(*Client)

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTransport replaces the HTTP round tripper. The timeout still applies.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// New builds a client for addr. Malformed addresses fail here, before any
// network activity.
func New(addr string, opts ...Option) (*Client, error) {
	endpoint, err := ParseEndpoint(addr)
	if err != nil {
		return nil, err
	}

	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		endpoint:  endpoint,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}

// Copy replaces the remote clipboard with text.
func (c *Client) Copy(ctx context.Context, text string) error {
	return c.post(ctx, strings.NewReader(text))
}

// CopyStream sends r to the remote clipboard with chunked encoding,
// without buffering it. A read error from r fails the request. r is not
// closed.
func (c *Client) CopyStream(ctx context.Context, r io.Reader) error {
	return c.post(ctx, io.NopCloser(r))
}

// CopySeq sends the chunks produced by seq. The producer is pulled only as
// fast as the connection drains it; an error from seq aborts the request.
func (c *Client) CopySeq(ctx context.Context, seq iter.Seq2[[]byte, error]) error {
	pr, pw := io.Pipe()
	go func() {
		for chunk, err := range seq {
			if err != nil {
				pw.CloseWithError(err)
				return
			}
			if _, err := pw.Write(chunk); err != nil {
				return
			}
		}
		pw.Close()
	}()

	err := c.post(ctx, pr)
	// Unblocks the producer if the request ended before seq was drained.
	pr.CloseWithError(io.ErrClosedPipe)
	return err
}

// Paste returns the whole remote clipboard.
func (c *Client) Paste(ctx context.Context) ([]byte, error) {
	resp, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, failure(ctx, "paste", err)
	}
	return data, nil
}

// PasteStream returns the remote clipboard as a Stream the caller drains
// at its own pace. The caller must Close it.
func (c *Client) PasteStream(ctx context.Context) (*Stream, error) {
	resp, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	return newStream(ctx, resp.Body), nil
}

func (c *Client) post(ctx context.Context, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.ClipboardURL(), body)
	if err != nil {
		return errors.TransportError(err)
	}
	req.Header.Set("Content-Type", transport.ContentType)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) get(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.ClipboardURL(), nil)
	if err != nil {
		return nil, errors.TransportError(err)
	}
	return c.do(req)
}

// do sends req and turns any non-200 status into an error. On success the
// caller owns resp.Body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, failure(req.Context(), req.Method+" "+transport.ClipboardPath, err)
	}
	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	defer resp.Body.Close()
	return nil, statusError(resp)
}

// failure classifies a request error. Cancellation by the caller is kept
// apart from transport failures; deadlines count as transport failures.
func failure(ctx context.Context, operation string, err error) error {
	if stderrors.Is(ctx.Err(), context.Canceled) {
		return errors.CancelledError(operation, err)
	}
	return errors.TransportError(err)
}

func statusError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := strings.TrimSpace(string(msg))
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return errors.NewWithError(
		transport.CodeForStatus(resp.StatusCode),
		fmt.Sprintf("server returned %d", resp.StatusCode),
		fmt.Errorf("%s", detail),
	)
}
