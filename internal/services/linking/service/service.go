// Package service implements the linking and creation coordinator
package service

import (
	"context"

	"civlink/internal/modkit/repokit"
	perr "civlink/internal/platform/errors"
	"civlink/internal/platform/logger"
	dom "civlink/internal/services/linking/domain"
	"civlink/internal/services/linking/repo"
	regdom "civlink/internal/services/registry/domain"
)

// Service implements domain.CoordinatorPort
type Service struct {
	DB       repokit.TxRunner
	Binder   repokit.Binder[repo.Storage]
	Registry regdom.ReaderPort
	Gateway  dom.GatewayPort
	Log      logger.Logger
}

// New constructs a linking coordinator
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], reg regdom.ReaderPort, gw dom.GatewayPort, log logger.Logger) *Service {
	return &Service{DB: db, Binder: binder, Registry: reg, Gateway: gw, Log: log}
}

// LinkExisting implements domain.CoordinatorPort
// the authoritative license read happens before the write transaction opens;
// every primary-store write commits atomically or not at all
func (s *Service) LinkExisting(ctx context.Context, req dom.LinkRequest, actorID string) (dom.LinkResult, error) {
	if !req.Method.Valid() {
		return dom.LinkResult{}, perr.InvalidArgf("unknown link method %q", req.Method)
	}
	if req.Confidence < 0 || req.Confidence > 1 {
		return dom.LinkResult{}, perr.InvalidArgf("confidence %v out of range", req.Confidence)
	}

	reads := s.Binder.Bind(s.DB)
	online, err := reads.OnlineByID(ctx, req.OnlineID)
	if err != nil {
		return dom.LinkResult{}, err
	}
	if _, err := s.Registry.Citizen(ctx, req.LocalID); err != nil {
		return dom.LinkResult{}, err
	}

	lic, err := s.Registry.CurrentLicense(ctx, req.LocalID)
	if err != nil {
		return dom.LinkResult{}, err
	}

	link := dom.Link{
		OnlineID:   req.OnlineID,
		LocalID:    req.LocalID,
		Method:     req.Method,
		Confidence: req.Confidence,
		ActorID:    actorID,
		Note:       req.Note,
	}
	return s.commitLink(ctx, link, online, lic)
}

// CreateAndLink implements domain.CoordinatorPort
// the gateway call is a remote, non-transactional effect that happens before
// the local transaction; a delivered creation is linked with Composite/1.0
func (s *Service) CreateAndLink(ctx context.Context, onlineID int64, actorID string) (dom.LinkResult, error) {
	reads := s.Binder.Bind(s.DB)
	online, err := reads.OnlineByID(ctx, onlineID)
	if err != nil {
		return dom.LinkResult{}, err
	}

	addrs, docs, sigs, faces, err := reads.ChildRecords(ctx, onlineID)
	if err != nil {
		return dom.LinkResult{}, err
	}

	payload := buildCreationPayload(*online, addrs, docs, sigs, faces)
	localID, err := s.Gateway.CreateIdentity(ctx, payload)
	if err != nil {
		s.Log.Error().Err(err).Int64("online_id", onlineID).Msg("identity creation failed")
		return dom.LinkResult{}, err
	}

	lic, err := s.Registry.CurrentLicense(ctx, localID)
	if err != nil {
		return dom.LinkResult{}, err
	}

	link := dom.Link{
		OnlineID:   onlineID,
		LocalID:    localID,
		Method:     dom.MethodComposite,
		Confidence: 1.0,
		ActorID:    actorID,
	}
	return s.commitLink(ctx, link, online, lic)
}

// Reject implements domain.CoordinatorPort
func (s *Service) Reject(ctx context.Context, onlineID int64, reason, actorID string) (bool, error) {
	reads := s.Binder.Bind(s.DB)
	if _, err := reads.OnlineByID(ctx, onlineID); err != nil {
		return false, err
	}
	if err := reads.SetStatus(ctx, onlineID, dom.StatusRejected, actorID, reason); err != nil {
		return false, err
	}
	return true, nil
}

// commitLink runs the shared write transaction: link insert, contact
// backfill, approval, optional license snapshot. Cancellation is honored
// only before the transaction opens; once open it runs to commit or rollback
func (s *Service) commitLink(ctx context.Context, link dom.Link, online *dom.OnlineIdentity, lic *regdom.License) (dom.LinkResult, error) {
	if err := ctx.Err(); err != nil {
		return dom.LinkResult{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "canceled before link transaction")
	}
	txCtx := context.WithoutCancel(ctx)

	var out dom.LinkResult
	err := s.DB.Tx(txCtx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)

		inserted, err := st.InsertLink(txCtx, link)
		if err != nil {
			return err
		}
		out.Link = inserted

		if err := st.BackfillContact(txCtx, link.LocalID, online.Email, online.Phone); err != nil {
			return err
		}
		if err := st.SetStatus(txCtx, link.OnlineID, dom.StatusApproved, link.ActorID, link.Note); err != nil {
			return err
		}

		if lic != nil {
			snap, err := st.CopyLicense(txCtx, link.LocalID, *lic)
			if err != nil {
				return err
			}
			out.Snapshot = &snap
		}
		return nil
	})
	if err != nil {
		if !perr.IsCode(err, perr.ErrorCodeAlreadyLinked) {
			s.Log.Error().Err(err).
				Int64("online_id", link.OnlineID).
				Int64("local_id", link.LocalID).
				Msg("link transaction rolled back")
		}
		return dom.LinkResult{}, err
	}
	return out, nil
}

// buildCreationPayload assembles the gateway request from explicit clones
func buildCreationPayload(
	online dom.OnlineIdentity,
	addrs []dom.Address,
	docs []dom.IdentityDocument,
	sigs []dom.Signature,
	faces []dom.FaceImage,
) dom.CreationPayload {
	p := dom.CreationPayload{
		Citizen:    dom.CloneCitizen(online),
		Addresses:  make([]dom.Address, 0, len(addrs)),
		Documents:  make([]dom.IdentityDocument, 0, len(docs)),
		Signatures: make([]dom.Signature, 0, len(sigs)),
		FaceImages: make([]dom.FaceImage, 0, len(faces)),
	}
	for _, a := range addrs {
		p.Addresses = append(p.Addresses, dom.CloneAddress(a))
	}
	for _, d := range docs {
		p.Documents = append(p.Documents, dom.CloneDocument(d))
	}
	for _, g := range sigs {
		p.Signatures = append(p.Signatures, dom.CloneSignature(g))
	}
	for _, f := range faces {
		p.FaceImages = append(p.FaceImages, dom.CloneFaceImage(f))
	}
	return p
}
