// Package router matches request paths against compiled path templates and
// dispatches to method-specific handlers.
//
// A template is a literal path in which every <name> placeholder stands for
// one path parameter. Parameters match one or more decimal digits, since
// every identifier in this API is numeric; handlers receive the raw captured
// string and do their own parsing. Resolution tries longer compiled patterns
// first, so /books/<id> wins over /books for the path /books/7; among
// equal-length patterns registration order decides.
package router

import (
	"net/http"
	"regexp"
	"sort"
	"strings"
)

// Params maps a path parameter name to its raw captured value.
type Params map[string]string

// HandlerFunc is the route handler invocation protocol. The body map is the
// decoded JSON request body for body-bearing methods, nil otherwise. The
// returned status and payload are encoded by the dispatcher on success; a
// non-nil error supersedes both and is mapped to a status by its kind.
type HandlerFunc func(r *http.Request, params Params, body map[string]any) (int, any, error)

// Middleware wraps a HandlerFunc with pre/post behavior.
type Middleware func(HandlerFunc) HandlerFunc

type route struct {
	pattern *regexp.Regexp
	method  string
	handler HandlerFunc
}

// Router holds the ordered route table. Register all routes at startup;
// Resolve is read-only and safe for concurrent use afterwards.
type Router struct {
	routes []route
}

func New() *Router { return &Router{} }

var placeholder = regexp.MustCompile(`<(\w+)>`)

// compile anchors the template against the whole path, escaping every
// literal character and turning each <name> into a named digit capture.
func compile(template string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	last := 0
	for _, loc := range placeholder.FindAllStringSubmatchIndex(template, -1) {
		b.WriteString(regexp.QuoteMeta(template[last:loc[0]]))
		b.WriteString(`(?P<` + template[loc[2]:loc[3]] + `>\d+)`)
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(template[last:]))
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// Register compiles template and appends the (pattern, method, handler)
// entry, keeping the table ordered by descending compiled-pattern length.
// Pattern length is a proxy for specificity: patterns with more literal
// segments are longer and must be tried before shorter ones that could
// shadow them. The sort is stable so equal-length patterns keep their
// registration order.
func (rt *Router) Register(template, method string, h HandlerFunc) {
	rt.routes = append(rt.routes, route{pattern: compile(template), method: method, handler: h})
	sort.SliceStable(rt.routes, func(i, j int) bool {
		return len(rt.routes[i].pattern.String()) > len(rt.routes[j].pattern.String())
	})
}

// Resolve returns the handler and extracted parameters for the first entry
// whose pattern fully matches path and whose method equals method. The
// boolean is false when no entry matches.
func (rt *Router) Resolve(path, method string) (HandlerFunc, Params, bool) {
	for _, e := range rt.routes {
		if e.method != method {
			continue
		}
		m := e.pattern.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		params := Params{}
		for i, name := range e.pattern.SubexpNames() {
			if i > 0 && name != "" {
				params[name] = m[i]
			}
		}
		return e.handler, params, true
	}
	return nil, nil, false
}
