package domain

import "context"

// CoordinatorPort drives the online identity state machine
type CoordinatorPort interface {
	// LinkExisting links an online identity to an existing local identity
	LinkExisting(ctx context.Context, req LinkRequest, actorID string) (LinkResult, error)

	// CreateAndLink mints a new local identity through the remote gateway,
	// then links to it with method Composite and confidence 1.0
	CreateAndLink(ctx context.Context, onlineID int64, actorID string) (LinkResult, error)

	// Reject moves the online identity to Rejected with a note
	Reject(ctx context.Context, onlineID int64, reason, actorID string) (bool, error)
}

// GatewayPort mints new local identities on the remote creation service
type GatewayPort interface {
	CreateIdentity(ctx context.Context, payload CreationPayload) (int64, error)
}
