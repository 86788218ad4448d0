package client

import (
	"context"
	stderrors "errors"
	"io"
	"iter"
)

const chunkSize = 32 << 10

var errStreamClosed = stderrors.New("paste stream closed")

// Stream is a finite, non-restartable sequence of payload chunks read from
// a paste response. Closing it before the end abandons the connection.
type Stream struct {
	ctx  context.Context
	body io.ReadCloser
	buf  []byte
	err  error
}

func newStream(ctx context.Context, body io.ReadCloser) *Stream {
	return &Stream{ctx: ctx, body: body, buf: make([]byte, chunkSize)}
}

// Next returns the next chunk, or io.EOF once the payload is complete. The
// chunk is only valid until the following call.
func (s *Stream) Next() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}

	n, err := s.body.Read(s.buf)
	if n > 0 {
		if err != nil {
			s.finish(err)
		}
		return s.buf[:n], nil
	}
	if err == nil {
		return s.buf[:0], nil
	}
	s.finish(err)
	return nil, s.err
}

func (s *Stream) finish(err error) {
	if err == io.EOF {
		s.err = io.EOF
	} else {
		s.err = failure(s.ctx, "paste", err)
	}
	s.body.Close()
}

// Chunks yields every remaining chunk. A failure is yielded once as the
// final element. The stream is closed when iteration stops.
func (s *Stream) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		defer s.Close()
		for {
			chunk, err := s.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if len(chunk) == 0 {
				continue
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

func (s *Stream) Close() error {
	if s.err == nil {
		s.err = errStreamClosed
		return s.body.Close()
	}
	return nil
}
