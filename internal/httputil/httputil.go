// Package httputil carries the small response helpers shared by every
// handler package.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/yabelyaev/N3xFin/internal/templates"
)

// JSON writes v as a JSON response.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Respond renders the named partial when a renderer exists and falls
// back to JSON otherwise, which is also what the tests exercise.
func Respond(w http.ResponseWriter, renderer *templates.Renderer, logger *logrus.Logger, name string, data interface{}) {
	if renderer != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderer.RenderPartial(w, name, data); err != nil {
			logger.WithError(err).WithField("partial", name).Error("render failed")
		}
		return
	}
	JSON(w, http.StatusOK, data)
}

// ErrorBody is the JSON shape of an error response and the data handed
// to the inline error partial.
type ErrorBody struct {
	Error string `json:"error"`
	Retry string `json:"retry,omitempty"`
}

// Error writes an inline, retryable error response. retryURL names the
// endpoint the client should call again; empty means not retryable.
func Error(w http.ResponseWriter, renderer *templates.Renderer, logger *logrus.Logger, status int, msg, retryURL string) {
	body := ErrorBody{Error: msg, Retry: retryURL}
	if renderer != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if err := renderer.RenderPartial(w, "error", body); err != nil {
			logger.WithError(err).Error("render failed for error partial")
		}
		return
	}
	JSON(w, status, body)
}
