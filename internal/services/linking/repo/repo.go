// Package repo provides the linking repository over the primary store.
package repo

import (
	"context"
	"errors"
	"strings"

	"civlink/internal/modkit/repokit"
	perr "civlink/internal/platform/errors"
	"civlink/internal/platform/store"
	"civlink/internal/services/linking/domain"
	regdom "civlink/internal/services/registry/domain"

	"github.com/jackc/pgx/v5"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the linking repository
// every method runs on the bound Queryer so the same implementation serves
// both plain reads and the coordinator's transaction
type Storage interface {
	OnlineByID(ctx context.Context, id int64) (*domain.OnlineIdentity, error)
	ChildRecords(ctx context.Context, onlineID int64) (
		[]domain.Address, []domain.IdentityDocument, []domain.Signature, []domain.FaceImage, error)

	InsertLink(ctx context.Context, link domain.Link) (domain.Link, error)
	BackfillContact(ctx context.Context, localID int64, email, phone string) error
	SetStatus(ctx context.Context, onlineID int64, status domain.Status, actorID, note string) error
	CopyLicense(ctx context.Context, localID int64, lic regdom.License) (domain.SnapshotInfo, error)
}

// OnlineByID implements Storage; deleted rows count as missing
func (s *pg) OnlineByID(ctx context.Context, id int64) (*domain.OnlineIdentity, error) {
	const q = `
		SELECT
			o.id,
			COALESCE(o.first_name_ar, ''),
			COALESCE(o.father_name_ar, ''),
			COALESCE(o.last_name_ar, ''),
			COALESCE(o.first_name_en, ''),
			COALESCE(o.last_name_en, ''),
			o.date_of_birth,
			COALESCE(o.national_id, ''),
			COALESCE(o.email, ''),
			COALESCE(o.phone, ''),
			o.status,
			o.is_deleted,
			o.validated_at,
			COALESCE(o.validated_by, '')
		FROM online_citizens o
		WHERE o.id = $1 AND o.is_deleted = FALSE
	`
	var rec domain.OnlineIdentity
	err := s.q.QueryRow(ctx, q, id).Scan(
		&rec.ID,
		&rec.FirstAr, &rec.FatherAr, &rec.LastAr,
		&rec.FirstEn, &rec.LastEn,
		&rec.DOB,
		&rec.NationalID, &rec.Email, &rec.Phone,
		&rec.Status, &rec.IsDeleted,
		&rec.ValidatedAt, &rec.ValidatedBy,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, perr.NotFoundf("online identity %d not found", id)
		}
		return nil, perr.FromPostgres(err, "online identity read")
	}
	return &rec, nil
}

// ChildRecords implements Storage; only non-deleted children are returned
func (s *pg) ChildRecords(ctx context.Context, onlineID int64) (
	[]domain.Address, []domain.IdentityDocument, []domain.Signature, []domain.FaceImage, error,
) {
	addrs, err := store.Many(ctx, s.q, func(r repokit.Row) (domain.Address, error) {
		var a domain.Address
		err := r.Scan(&a.ID, &a.OnlineID, &a.Emirate, &a.City, &a.Street, &a.POBox)
		return a, err
	}, `
		SELECT id, online_id, COALESCE(emirate,''), COALESCE(city,''), COALESCE(street,''), COALESCE(po_box,'')
		FROM online_addresses WHERE online_id = $1 AND is_deleted = FALSE ORDER BY id`, onlineID)
	if err != nil {
		return nil, nil, nil, nil, perr.FromPostgres(err, "online addresses")
	}

	docs, err := store.Many(ctx, s.q, func(r repokit.Row) (domain.IdentityDocument, error) {
		var d domain.IdentityDocument
		err := r.Scan(&d.ID, &d.OnlineID, &d.DocType, &d.DocNo, &d.IssuedAt, &d.Expires)
		return d, err
	}, `
		SELECT id, online_id, COALESCE(doc_type,''), COALESCE(doc_no,''), issued_at, expires_at
		FROM online_documents WHERE online_id = $1 AND is_deleted = FALSE ORDER BY id`, onlineID)
	if err != nil {
		return nil, nil, nil, nil, perr.FromPostgres(err, "online documents")
	}

	sigs, err := store.Many(ctx, s.q, func(r repokit.Row) (domain.Signature, error) {
		var g domain.Signature
		err := r.Scan(&g.ID, &g.OnlineID, &g.Path)
		return g, err
	}, `
		SELECT id, online_id, COALESCE(path,'')
		FROM online_signatures WHERE online_id = $1 AND is_deleted = FALSE ORDER BY id`, onlineID)
	if err != nil {
		return nil, nil, nil, nil, perr.FromPostgres(err, "online signatures")
	}

	faces, err := store.Many(ctx, s.q, func(r repokit.Row) (domain.FaceImage, error) {
		var f domain.FaceImage
		err := r.Scan(&f.ID, &f.OnlineID, &f.Path)
		return f, err
	}, `
		SELECT id, online_id, COALESCE(path,'')
		FROM online_face_images WHERE online_id = $1 AND is_deleted = FALSE ORDER BY id`, onlineID)
	if err != nil {
		return nil, nil, nil, nil, perr.FromPostgres(err, "online face images")
	}

	return addrs, docs, sigs, faces, nil
}

// InsertLink implements Storage
// the unique index on online_identity_id closes the check-then-act race;
// its violation surfaces as AlreadyLinked, not a raw storage error
func (s *pg) InsertLink(ctx context.Context, link domain.Link) (domain.Link, error) {
	const q = `
		INSERT INTO links (online_identity_id, local_identity_id, method, confidence, actor_id, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := s.q.QueryRow(ctx, q,
		link.OnlineID, link.LocalID, string(link.Method), link.Confidence, link.ActorID, link.Note,
	).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return domain.Link{}, perr.AlreadyLinkedf("online identity %d already linked", link.OnlineID)
		}
		return domain.Link{}, perr.FromPostgres(err, "link insert")
	}
	return link, nil
}

// BackfillContact implements Storage
// never overwrites a non-empty stored value
func (s *pg) BackfillContact(ctx context.Context, localID int64, email, phone string) error {
	const q = `
		INSERT INTO local_contacts (local_id, email, phone)
		VALUES ($1, $2, $3)
		ON CONFLICT (local_id) DO UPDATE SET
			email = CASE
				WHEN COALESCE(local_contacts.email, '') = '' THEN EXCLUDED.email
				ELSE local_contacts.email END,
			phone = CASE
				WHEN COALESCE(local_contacts.phone, '') = '' THEN EXCLUDED.phone
				ELSE local_contacts.phone END
	`
	_, err := s.q.Exec(ctx, q, localID, email, phone)
	return perr.WrapIf(err, perr.ErrorCodeDB, "contact backfill")
}

// SetStatus implements Storage
func (s *pg) SetStatus(ctx context.Context, onlineID int64, status domain.Status, actorID, note string) error {
	const q = `
		UPDATE online_citizens
		SET status = $2, validated_at = now(), validated_by = $3, note = NULLIF($4, '')
		WHERE id = $1 AND is_deleted = FALSE
	`
	tag, err := s.q.Exec(ctx, q, onlineID, string(status), actorID, note)
	if err != nil {
		return perr.FromPostgres(err, "online status update")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("online identity %d not found", onlineID)
	}
	return nil
}

// CopyLicense implements Storage
// materializes the authoritative license and its detail lines as new rows,
// identity fields reset so the snapshot never references the source
func (s *pg) CopyLicense(ctx context.Context, localID int64, lic regdom.License) (domain.SnapshotInfo, error) {
	const licQ = `
		INSERT INTO licenses (local_identity_id, license_no, license_type, is_international, issuance_date, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var snapID int64
	err := s.q.QueryRow(ctx, licQ,
		localID, lic.LicenseNo, lic.LicenseType, lic.IsInternational, lic.IssuanceDate, lic.ExpiryDate,
	).Scan(&snapID)
	if err != nil {
		return domain.SnapshotInfo{}, perr.FromPostgres(err, "license snapshot insert")
	}

	const detQ = `
		INSERT INTO license_details (license_id, vehicle_category, issued_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	for _, d := range lic.Details {
		if _, err := s.q.Exec(ctx, detQ, snapID, d.VehicleCat, d.IssuedAt, d.ExpiresAt); err != nil {
			return domain.SnapshotInfo{}, perr.FromPostgres(err, "license detail insert")
		}
	}

	return domain.SnapshotInfo{LicenseID: snapID, DetailLines: len(lic.Details)}, nil
}

func isNoRows(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "no rows in result set")
}
