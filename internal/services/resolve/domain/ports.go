package domain

import "context"

// SearcherPort resolves a raw search against the authoritative store
type SearcherPort interface {
	SearchLocal(ctx context.Context, in SearchInput) (SearchResult, error)
}
