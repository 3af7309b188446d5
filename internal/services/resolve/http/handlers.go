// Package http provides http transport for identity search
package http

import (
	stdhttp "net/http"

	"civlink/internal/modkit/httpkit"
	"civlink/internal/services/resolve/domain"
)

// Register mounts resolve endpoints on the given router
func Register(r httpkit.Router, s domain.SearcherPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)
}

type handlers struct{ svc domain.SearcherPort }

// @Summary Search the authoritative registry for matching identities
// @Tags Identity
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Search evidence"
// @Success 200 {object} domain.SearchResult "ok"
// @Router /identity/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.SearchLocal(r.Context(), in)
}
