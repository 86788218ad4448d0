package client

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"iter"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"limeade/pkg/clipboard"
	"limeade/pkg/errors"
	"limeade/pkg/logger"
	"limeade/pkg/server"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type busyResource struct{ *clipboard.Memory }

func (busyResource) Write([]byte) error {
	return fmt.Errorf("clipboard write: %w", clipboard.ErrBusy)
}

type brokenResource struct{}

func (brokenResource) Read() ([]byte, error) { return nil, clipboard.ErrUnavailable }
func (brokenResource) Write([]byte) error    { return clipboard.ErrUnavailable }

func newTestServer(t *testing.T, res clipboard.Resource) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(server.New("", res).Handler())
	t.Cleanup(ts.Close)

	c, err := New(ts.URL)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, ts
}

func chunks(parts ...string) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for _, p := range parts {
			if !yield([]byte(p), nil) {
				return
			}
		}
	}
}

func drain(t *testing.T, s *Stream) []byte {
	t.Helper()
	var out []byte
	for chunk, err := range s.Chunks() {
		if err != nil {
			t.Fatalf("stream error = %v", err)
		}
		out = append(out, chunk...)
	}
	return out
}

func TestCopyPaste(t *testing.T) {
	c, _ := newTestServer(t, clipboard.NewMemory())
	ctx := context.Background()

	for _, text := range []string{"hello", "", "line1\r\nline2\n", "\x00\xff binary"} {
		if err := c.Copy(ctx, text); err != nil {
			t.Fatalf("Copy(%q) error = %v", text, err)
		}
		got, err := c.Paste(ctx)
		if err != nil {
			t.Fatalf("Paste() error = %v", err)
		}
		if string(got) != text {
			t.Errorf("Paste() = %q, want %q", got, text)
		}
	}
}

func TestStreamingMatchesBuffered(t *testing.T) {
	c, _ := newTestServer(t, clipboard.NewMemory())
	ctx := context.Background()
	payload := bytes.Repeat([]byte("0123456789"), 100_000)

	if err := c.CopyStream(ctx, bytes.NewReader(payload)); err != nil {
		t.Fatalf("CopyStream() error = %v", err)
	}

	buffered, err := c.Paste(ctx)
	if err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if !bytes.Equal(buffered, payload) {
		t.Fatalf("Paste() returned %d bytes, want %d", len(buffered), len(payload))
	}

	s, err := c.PasteStream(ctx)
	if err != nil {
		t.Fatalf("PasteStream() error = %v", err)
	}
	if streamed := drain(t, s); !bytes.Equal(streamed, buffered) {
		t.Errorf("PasteStream() returned %d bytes, Paste() %d", len(streamed), len(buffered))
	}
}

func TestCopySeq(t *testing.T) {
	c, _ := newTestServer(t, clipboard.NewMemory())
	ctx := context.Background()

	if err := c.CopySeq(ctx, chunks("lime", "", "ade")); err != nil {
		t.Fatalf("CopySeq() error = %v", err)
	}
	got, err := c.Paste(ctx)
	if err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if string(got) != "limeade" {
		t.Errorf("Paste() = %q, want %q", got, "limeade")
	}
}

func TestCopySeqSourceErrorLeavesClipboard(t *testing.T) {
	mem := clipboard.NewMemory()
	_ = mem.Write([]byte("keep"))
	c, _ := newTestServer(t, mem)

	boom := stderrors.New("source failed")
	seq := func(yield func([]byte, error) bool) {
		if !yield([]byte("partial"), nil) {
			return
		}
		yield(nil, boom)
	}

	err := c.CopySeq(context.Background(), seq)
	if !errors.IsExitCode(err, errors.ExitCodeTransport) {
		t.Fatalf("CopySeq() error = %v, want transport error", err)
	}
	if !stderrors.Is(err, boom) {
		t.Errorf("CopySeq() error = %v, want it to wrap the source error", err)
	}
	if got, _ := mem.Read(); string(got) != "keep" {
		t.Errorf("clipboard = %q, want %q", got, "keep")
	}
}

func TestCopySeqCancel(t *testing.T) {
	mem := clipboard.NewMemory()
	_ = mem.Write([]byte("keep"))
	c, _ := newTestServer(t, mem)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	seq := func(yield func([]byte, error) bool) {
		if !yield([]byte("first"), nil) {
			return
		}
		cancel()
		for yield([]byte("more"), nil) {
		}
	}

	err := c.CopySeq(ctx, seq)
	if !errors.IsExitCode(err, errors.ExitCodeCancellation) {
		t.Fatalf("CopySeq() error = %v, want cancellation error", err)
	}
	if got, _ := mem.Read(); string(got) != "keep" {
		t.Errorf("clipboard = %q, want %q", got, "keep")
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, stderrors.New("stdin closed") }

func TestCopyStreamReaderError(t *testing.T) {
	mem := clipboard.NewMemory()
	_ = mem.Write([]byte("keep"))
	c, _ := newTestServer(t, mem)

	err := c.CopyStream(context.Background(), io.MultiReader(strings.NewReader("abc"), errReader{}))
	if !errors.IsExitCode(err, errors.ExitCodeTransport) {
		t.Fatalf("CopyStream() error = %v, want transport error", err)
	}
	if got, _ := mem.Read(); string(got) != "keep" {
		t.Errorf("clipboard = %q, want %q", got, "keep")
	}
}

func TestCopyBusy(t *testing.T) {
	mem := clipboard.NewMemory()
	_ = mem.Write([]byte("keep"))
	c, _ := newTestServer(t, busyResource{mem})

	err := c.Copy(context.Background(), "new")
	if !errors.IsExitCode(err, errors.ExitCodeBusy) {
		t.Fatalf("Copy() error = %v, want busy error", err)
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "busy") {
		t.Errorf("Copy() error = %q, want status and server message", err.Error())
	}
	if got, _ := mem.Read(); string(got) != "keep" {
		t.Errorf("clipboard = %q, want %q", got, "keep")
	}
}

func TestPasteAccessFailure(t *testing.T) {
	c, _ := newTestServer(t, brokenResource{})

	if _, err := c.Paste(context.Background()); !errors.IsExitCode(err, errors.ExitCodeAccess) {
		t.Errorf("Paste() error = %v, want access error", err)
	}
	if _, err := c.PasteStream(context.Background()); !errors.IsExitCode(err, errors.ExitCodeAccess) {
		t.Errorf("PasteStream() error = %v, want access error", err)
	}
}

func TestPasteStreamPartialConsumption(t *testing.T) {
	mem := clipboard.NewMemory()
	_ = mem.Write(bytes.Repeat([]byte("x"), 4*chunkSize))
	c, _ := newTestServer(t, mem)

	s, err := c.PasteStream(context.Background())
	if err != nil {
		t.Fatalf("PasteStream() error = %v", err)
	}
	for chunk, err := range s.Chunks() {
		if err != nil {
			t.Fatalf("stream error = %v", err)
		}
		if len(chunk) == 0 {
			t.Fatal("empty chunk yielded")
		}
		break
	}

	if _, err := s.Next(); err == nil {
		t.Error("Next() after early stop should fail")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestPasteStreamEmpty(t *testing.T) {
	c, _ := newTestServer(t, clipboard.NewMemory())

	s, err := c.PasteStream(context.Background())
	if err != nil {
		t.Fatalf("PasteStream() error = %v", err)
	}
	if got := drain(t, s); len(got) != 0 {
		t.Errorf("PasteStream() = %q, want empty", got)
	}
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("Next() after end = %v, want io.EOF", err)
	}
}

func TestConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	c, err := New(addr)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := c.Copy(context.Background(), "x"); !errors.IsExitCode(err, errors.ExitCodeTransport) {
		t.Errorf("Copy() error = %v, want transport error", err)
	}
	if _, err := c.Paste(context.Background()); !errors.IsExitCode(err, errors.ExitCodeTransport) {
		t.Errorf("Paste() error = %v, want transport error", err)
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotUA, gotType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.Method == http.MethodPost {
			gotType = r.Header.Get("Content-Type")
		}
	}))
	defer ts.Close()

	c, err := New(ts.URL, WithUserAgent("limeade/test"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := c.Copy(context.Background(), "x"); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if gotUA != "limeade/test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotType != "application/octet-stream" {
		t.Errorf("Content-Type = %q", gotType)
	}
}

func TestUnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	c, err := New(ts.URL)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := c.Paste(context.Background()); !errors.IsExitCode(err, errors.ExitCodeTransport) {
		t.Errorf("Paste() error = %v, want transport error", err)
	}
}

func TestCancelledContext(t *testing.T) {
	c, _ := newTestServer(t, clipboard.NewMemory())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Copy(ctx, "x"); !errors.IsExitCode(err, errors.ExitCodeCancellation) {
		t.Errorf("Copy() error = %v, want cancellation error", err)
	}
	if _, err := c.Paste(ctx); !errors.IsExitCode(err, errors.ExitCodeCancellation) {
		t.Errorf("Paste() error = %v, want cancellation error", err)
	}
}

type countingTransport struct {
	calls atomic.Int32
}

func (rt *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.calls.Add(1)
	return http.DefaultTransport.RoundTrip(req)
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer ts.Close()
	defer close(release)

	rt := &countingTransport{}
	c, err := New(ts.URL, WithTransport(rt))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.http.Timeout != DefaultTimeout {
		t.Errorf("http.Client.Timeout = %v, want %v", c.http.Timeout, DefaultTimeout)
	}
	if DefaultTimeout != 30*time.Second {
		t.Errorf("DefaultTimeout = %v, want 30s", DefaultTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Paste(ctx)
	if !errors.IsExitCode(err, errors.ExitCodeTransport) {
		t.Fatalf("Paste() past deadline error = %v, want transport error", err)
	}
	if rt.calls.Load() != 1 {
		t.Errorf("custom transport used %d times, want 1", rt.calls.Load())
	}
}
