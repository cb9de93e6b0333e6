package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/alfagnish/bookshelf/internal/entity"
	"github.com/alfagnish/bookshelf/internal/router"
)

// decodeInto fills v from a decoded JSON body map. A nil body is a no-op. A
// type mismatch (e.g. a string where a number belongs) is the client's
// fault, so it surfaces as a validation failure.
func decodeInto(body map[string]any, v any) error {
	if body == nil {
		return nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &entity.ValidationError{Message: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

// asMap flattens v into a field map so handlers can attach extra response
// fields without changing the entity type.
func asMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// paramInt parses the named path parameter as an integer. The route pattern
// already restricts parameters to digits, so a failure here means a pattern
// and handler disagree about the parameter set.
func paramInt(params router.Params, name string) (int, error) {
	n, err := strconv.Atoi(params[name])
	if err != nil {
		return 0, fmt.Errorf("path parameter %q: %w", name, err)
	}
	return n, nil
}
