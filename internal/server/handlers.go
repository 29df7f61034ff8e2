package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/ascfix/pkg/buildinfo"
	"github.com/matzehuels/ascfix/pkg/errors"
	"github.com/matzehuels/ascfix/pkg/observability"
	"github.com/matzehuels/ascfix/pkg/pipeline"
)

type fixRequest struct {
	Content string `json:"content"`
	Mode    string `json:"mode"`
	Fences  bool   `json:"fences"`
	Lists   bool   `json:"lists"`
}

type inspectRequest struct {
	Content string `json:"content"`
}

type inspectResponse struct {
	RunID  string                     `json:"run_id"`
	Blocks []pipeline.BlockInspection `json:"blocks"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleFix(w http.ResponseWriter, r *http.Request) {
	var req fixRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.cfg.Defaults
	opts.Mode = pipeline.Mode(req.Mode)
	opts.Fences = req.Fences
	opts.Lists = req.Lists
	opts.Logger = s.logger.With("request_id", requestIDFrom(r.Context()))

	res, err := s.runner.ProcessDocument(r.Context(), req.Content, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res.RunID = requestIDFrom(r.Context())
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var req inspectRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	blocks, err := s.runner.InspectDocument(r.Context(), req.Content, s.cfg.Defaults.TTL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if blocks == nil {
		blocks = []pipeline.BlockInspection{}
	}
	writeJSON(w, http.StatusOK, inspectResponse{
		RunID:  requestIDFrom(r.Context()),
		Blocks: blocks,
	})
}

// decode reads a JSON body and validates the content field.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.New(errors.ErrCodeFileTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	var content string
	switch req := v.(type) {
	case *fixRequest:
		content = req.Content
	case *inspectRequest:
		content = req.Content
	}
	return errors.ValidateContent(content, 0)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if !errors.IsClientError(err) {
		s.logger.Error("request failed", "request_id", requestIDFrom(r.Context()), "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMode, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
