// Package session tracks one-shot session tokens and issues signed login
// tokens. The registry rejects a token that already completed a guarded
// request, which stops double submissions from a retried client.
package session

import (
	"net/http"
	"sync"

	"github.com/alfagnish/bookshelf/internal/entity"
	"github.com/alfagnish/bookshelf/internal/router"
)

// HeaderName is the request header carrying the client's session token.
const HeaderName = "Session-ID"

// Registry is a thread-safe set of tokens that have completed a guarded
// request. Entries never expire; a token is good for exactly one submission.
type Registry struct {
	mu     sync.RWMutex
	active map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{active: make(map[string]bool)}
}

// Active reports whether token has already completed a guarded request.
func (r *Registry) Active(token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active[token]
}

// Activate marks token as used.
func (r *Registry) Activate(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[token] = true
}

// Len returns the number of recorded tokens.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.active)
}

// Guard wraps next so that a request presenting an already-used Session-ID
// header fails before the handler runs, and a successful handling records
// the token. Requests without the header bypass the guard entirely.
func Guard(reg *Registry, next router.HandlerFunc) router.HandlerFunc {
	return func(r *http.Request, params router.Params, body map[string]any) (int, any, error) {
		token := r.Header.Get(HeaderName)
		if token != "" && reg.Active(token) {
			return 0, nil, &entity.ValidationError{Message: "Session already active"}
		}
		status, payload, err := next(r, params, body)
		if err == nil && token != "" {
			reg.Activate(token)
		}
		return status, payload, err
	}
}
