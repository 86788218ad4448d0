package server

import (
	"io"
	"net/http"
	"strconv"

	"limeade/pkg/errors"
	"limeade/pkg/logger"
	"limeade/pkg/transport"
)

// StatusFor maps an error from the clipboard taxonomy to an HTTP status.
func StatusFor(err error) int {
	switch errors.CodeOf(err) {
	case errors.ExitCodeSuccess:
		return http.StatusOK
	case errors.ExitCodeBusy, errors.ExitCodeTransport:
		return http.StatusServiceUnavailable
	case errors.ExitCodeAccess:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	logger.Warn().
		Err(err).
		Str("request_id", requestID(r)).
		Int("status", status).
		Msg("clipboard request failed")
	http.Error(w, err.Error(), status)
}

// handleCopy receives the complete body before touching the clipboard. A
// body cut short by the peer never reaches the resource.
func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, errors.TransportError(err))
		return
	}

	if err := s.Copy(data); err != nil {
		writeError(w, r, err)
		return
	}

	logger.Debug().Str("request_id", requestID(r)).Int("bytes", len(data)).Msg("clipboard updated")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handlePaste(w http.ResponseWriter, r *http.Request) {
	data, err := s.Paste()
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", transport.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(data); err != nil {
		logger.Debug().Err(err).Str("request_id", requestID(r)).Msg("client went away during paste")
	}
}
