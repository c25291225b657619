// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package web binds request/response handler funcs to JSON endpoints
// and maps handler errors to HTTP statuses.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Error is an error with an HTTP status and optionally per-field
// validation messages.
type Error struct {
	Status int
	Fields map[string]string

	err error
}

// NewError wraps err with an HTTP status.
func NewError(status int, err error) *Error {
	return &Error{
		Status: status,
		err:    err,
	}
}

// InvalidForm reports a failed form validation as a 400 carrying the
// per-field messages.
func InvalidForm(fields map[string]string) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Fields: fields,
		err:    errors.New("invalid form submission"),
	}
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Handle registers fn as a POST JSON endpoint on mux. The request body
// is decoded into Req, the response encoded from Resp; an empty body
// yields a zero Req.
func Handle[Req any, Resp any](mux *chi.Mux, path string, fn func(context.Context, *Req) (*Resp, error)) {
	mux.Post(path, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		req := new(Req)
		if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
			writeError(ctx, w, NewError(http.StatusBadRequest, fmt.Errorf("web: decoding request: %w", err)))
			return
		}

		resp, err := fn(ctx, req)
		if err != nil {
			writeError(ctx, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.ErrorContext(ctx, "web: encoding response", "error", err)
		}
	})
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := errorBody{Error: "internal server error"}

	var webErr *Error
	if errors.As(err, &webErr) {
		status = webErr.Status
		body.Fields = webErr.Fields
		if status < http.StatusInternalServerError {
			body.Error = webErr.Error()
		}
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "web: handler error", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
