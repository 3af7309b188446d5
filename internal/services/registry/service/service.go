// Package service provides the registry service implementation
package service

import (
	"context"

	"civlink/internal/modkit/repokit"
	dom "civlink/internal/services/registry/domain"
	"civlink/internal/services/registry/repo"
)

// Service implements domain.ReaderPort against the registry pool
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
}

// New constructs a registry service over the authoritative pool
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Service {
	return &Service{DB: db, Binder: binder}
}

// Candidates implements domain.ReaderPort
func (s *Service) Candidates(ctx context.Context, q dom.Query) ([]dom.CandidateRecord, error) {
	return s.Binder.Bind(s.DB).Candidates(ctx, q)
}

// CurrentLicense implements domain.ReaderPort
func (s *Service) CurrentLicense(ctx context.Context, citizenID int64) (*dom.License, error) {
	return s.Binder.Bind(s.DB).CurrentLicense(ctx, citizenID)
}

// Citizen returns one non-deleted citizen projection by id
func (s *Service) Citizen(ctx context.Context, id int64) (*dom.CandidateRecord, error) {
	return s.Binder.Bind(s.DB).Citizen(ctx, id)
}
