// Package http provides http transport for the linking coordinator
package http

import (
	stdhttp "net/http"

	"civlink/internal/modkit/httpkit"
	perr "civlink/internal/platform/errors"
	pnet "civlink/internal/platform/net"
	"civlink/internal/services/linking/domain"
)

// Register mounts linking endpoints on the given router
func Register(r httpkit.Router, s domain.CoordinatorPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.LinkRequest](r, "/link", h.link)
	httpkit.PostJSON[createInput](r, "/create-link", h.createLink)
	httpkit.PostJSON[rejectInput](r, "/reject", h.reject)
}

type handlers struct{ svc domain.CoordinatorPort }

type createInput struct {
	OnlineID int64 `json:"online_id" validate:"required,gt=0"`
}

type rejectInput struct {
	OnlineID int64  `json:"online_id" validate:"required,gt=0"`
	Reason   string `json:"reason" validate:"required,max=500"`
}

type rejectOutput struct {
	Rejected bool `json:"rejected"`
}

// actor pulls the operator id off the context; every write here is
// attributed, so a request without one is refused outright
func actor(r *stdhttp.Request) (string, error) {
	id := pnet.ActorID(r.Context())
	if id == "" {
		return "", perr.Unauthorizedf("missing X-Actor-ID header")
	}
	return id, nil
}

// @Summary Link an online identity to an existing local identity
// @Tags Identity
// @Accept json
// @Produce json
// @Param X-Actor-ID header string true "Operator id"
// @Param payload body domain.LinkRequest true "Link request"
// @Success 200 {object} domain.LinkResult "ok"
// @Router /identity/link [post]
func (h *handlers) link(r *stdhttp.Request, in domain.LinkRequest) (any, error) {
	actorID, err := actor(r)
	if err != nil {
		return nil, err
	}
	return h.svc.LinkExisting(r.Context(), in, actorID)
}

// @Summary Create a new local identity via the gateway and link to it
// @Tags Identity
// @Accept json
// @Produce json
// @Param X-Actor-ID header string true "Operator id"
// @Param payload body createInput true "Creation request"
// @Success 200 {object} domain.LinkResult "ok"
// @Router /identity/create-link [post]
func (h *handlers) createLink(r *stdhttp.Request, in createInput) (any, error) {
	actorID, err := actor(r)
	if err != nil {
		return nil, err
	}
	return h.svc.CreateAndLink(r.Context(), in.OnlineID, actorID)
}

// @Summary Reject an online identity submission
// @Tags Identity
// @Accept json
// @Produce json
// @Param X-Actor-ID header string true "Operator id"
// @Param payload body rejectInput true "Rejection"
// @Success 200 {object} rejectOutput "ok"
// @Router /identity/reject [post]
func (h *handlers) reject(r *stdhttp.Request, in rejectInput) (any, error) {
	actorID, err := actor(r)
	if err != nil {
		return nil, err
	}
	ok, err := h.svc.Reject(r.Context(), in.OnlineID, in.Reason, actorID)
	if err != nil {
		return nil, err
	}
	return rejectOutput{Rejected: ok}, nil
}
