package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/alfagnish/bookshelf/internal/entity"
	"github.com/alfagnish/bookshelf/internal/repo"
	"github.com/alfagnish/bookshelf/internal/router"
)

// dispatcher is the request loop around the route table: resolve, decode the
// body when the method carries one, invoke the handler, encode the result.
// Every path through ServeHTTP writes exactly one response.
type dispatcher struct {
	routes *router.Router
}

func (d *dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Preflight requests with CORS headers are answered by the cors
	// middleware before reaching here; a bare OPTIONS gets an empty 200.
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	h, params, ok := d.routes.Resolve(r.URL.Path, r.Method)
	if !ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "Not Found")
		return
	}

	var body map[string]any
	if methodHasBody(r.Method) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unable to read request body")
			return
		}
		// An empty body is allowed: toggle-status PATCHes carry none.
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
		}
	}

	status, payload, err := h(r, params, body)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, status, payload)
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// statusFor maps an error to its response status. Not-found lookups answer
// 404; earlier generations of this API used 400 for them, so clients should
// not rely on the distinction. Store corruption and I/O failures are the
// only unexpected class and answer 500.
func statusFor(err error) int {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	if errors.Is(err, repo.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeJSON serialises v as JSON and writes it to the response with the
// given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a standard JSON error response of the form
// {"error": "message"}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
