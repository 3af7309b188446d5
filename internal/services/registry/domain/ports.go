package domain

import "context"

// ReaderPort reads candidates and licenses from the authoritative store
type ReaderPort interface {
	// Candidates runs the retrieval strategies and returns a deduplicated pool
	Candidates(ctx context.Context, q Query) ([]CandidateRecord, error)

	// CurrentLicense returns the citizen's most recent non-deleted,
	// non-international license with its detail lines, or nil when none exists
	CurrentLicense(ctx context.Context, citizenID int64) (*License, error)

	// Citizen returns one non-deleted citizen projection, NotFound otherwise
	Citizen(ctx context.Context, id int64) (*CandidateRecord, error)
}
