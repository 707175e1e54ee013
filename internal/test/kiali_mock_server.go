package test

import (
	"net/http"
	"net/http/httptest"
)

// KialiHandler serves canned console API responses keyed by request path.
// Unregistered paths return 404, which the client treats as not found.
type KialiHandler struct {
	Responses map[string]string
	// Requests records every path (with query) the client asked for.
	Requests []string
}

var _ http.Handler = (*KialiHandler)(nil)

func NewKialiHandler() *KialiHandler {
	return &KialiHandler{Responses: make(map[string]string)}
}

// Respond registers the body served for the given path.
func (h *KialiHandler) Respond(path, body string) *KialiHandler {
	h.Responses[path] = body
	return h
}

func (h *KialiHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.Requests = append(h.Requests, req.URL.RequestURI())
	body, ok := h.Responses[req.URL.Path]
	if !ok {
		http.NotFound(w, req)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// KialiServer starts an httptest server around the handler. The caller owns
// the server and must Close it.
func KialiServer(h *KialiHandler) *httptest.Server {
	return httptest.NewServer(h)
}
