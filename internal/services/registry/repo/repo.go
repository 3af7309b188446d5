// Package repo provides the registry repository implementation.
package repo

import (
	"context"
	"errors"
	"strings"

	"civlink/internal/modkit/repokit"
	perr "civlink/internal/platform/errors"
	"civlink/internal/services/registry/domain"

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

// Storage defines the registry repository
type Storage interface {
	Candidates(ctx context.Context, q domain.Query) ([]domain.CandidateRecord, error)
	CurrentLicense(ctx context.Context, citizenID int64) (*domain.License, error)
	Citizen(ctx context.Context, id int64) (*domain.CandidateRecord, error)
}

// candidateSelect is the shared projection; text columns coalesce to ”
// so rows scan without per-column pointers
const candidateSelect = `
	SELECT
		c.id,
		COALESCE(c.first_name_ar, ''),
		COALESCE(c.father_name_ar, ''),
		COALESCE(c.last_name_ar, ''),
		COALESCE(c.first_name_en, ''),
		COALESCE(c.last_name_en, ''),
		c.date_of_birth,
		COALESCE(c.national_id, ''),
		COALESCE(c.passport_no, ''),
		COALESCE(c.registration_no, ''),
		COALESCE(c.phone, ''),
		COALESCE(c.email, ''),
		COALESCE(c.nationality, '')
	FROM citizens c
	WHERE c.is_deleted = FALSE
`

// strategy is one retrieval query with its bound args
type strategy struct {
	where string
	args  []any
}

// strategiesFor builds the applicable retrieval strategies in priority order
// document keys first, then name composites, then the phone auxiliary.
// Name strategies require the name evidence and DOB jointly
func strategiesFor(q domain.Query) []strategy {
	var out []strategy

	if q.NationalID != "" {
		out = append(out, strategy{"AND c.national_id = $1", []any{q.NationalID}})
	}
	if q.Passport != "" {
		out = append(out, strategy{"AND c.passport_no = $1", []any{q.Passport}})
	}
	if q.Registration != "" {
		out = append(out, strategy{"AND c.registration_no = $1", []any{q.Registration}})
	}

	if q.DOB != nil {
		if q.FirstAr != "" && q.FatherAr != "" && q.LastAr != "" {
			out = append(out, strategy{
				"AND c.first_name_ar = $1 AND c.father_name_ar = $2 AND c.last_name_ar = $3 AND c.date_of_birth = $4",
				[]any{q.FirstAr, q.FatherAr, q.LastAr, *q.DOB},
			})
		}
		if q.FirstEn != "" && q.LastEn != "" {
			out = append(out, strategy{
				"AND c.first_name_en = $1 AND c.last_name_en = $2 AND c.date_of_birth = $3",
				[]any{q.FirstEn, q.LastEn, *q.DOB},
			})
		}
		if len(q.ArabicVariants) > 0 {
			out = append(out, strategy{
				"AND c.first_name_ar = ANY($1) AND c.date_of_birth = $2",
				[]any{q.ArabicVariants, *q.DOB},
			})
		}
		if len(q.LatinVariants) > 0 {
			out = append(out, strategy{
				"AND c.first_name_en = ANY($1) AND c.date_of_birth = $2",
				[]any{q.LatinVariants, *q.DOB},
			})
		}
	}

	if q.Phone != "" {
		out = append(out, strategy{"AND c.phone = $1", []any{q.Phone}})
	}

	return out
}

// Candidates implements Storage
// strategies run sequentially and union into a pool deduplicated by id,
// keeping first-seen order so document-key hits stay in front
func (s *pg) Candidates(ctx context.Context, q domain.Query) ([]domain.CandidateRecord, error) {
	var (
		out  []domain.CandidateRecord
		seen = map[int64]bool{}
	)

	for _, st := range strategiesFor(q) {
		rows, err := s.q.Query(ctx, candidateSelect+st.where, st.args...)
		if err != nil {
			return nil, perr.FromPostgres(err, "registry candidates query")
		}

		for rows.Next() {
			var rec domain.CandidateRecord
			if err := rows.Scan(
				&rec.ID,
				&rec.FirstAr, &rec.FatherAr, &rec.LastAr,
				&rec.FirstEn, &rec.LastEn,
				&rec.DOB,
				&rec.NationalID, &rec.Passport, &rec.Registration,
				&rec.Phone, &rec.Email, &rec.Nationality,
			); err != nil {
				rows.Close()
				return nil, perr.FromPostgres(err, "registry candidates scan")
			}
			if !seen[rec.ID] {
				seen[rec.ID] = true
				out = append(out, rec)
			}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, perr.FromPostgres(err, "registry candidates rows")
		}
	}

	return out, nil
}

// Citizen implements Storage; returns NotFound when the row is missing or deleted
func (s *pg) Citizen(ctx context.Context, id int64) (*domain.CandidateRecord, error) {
	var rec domain.CandidateRecord
	err := s.q.QueryRow(ctx, candidateSelect+"AND c.id = $1", id).Scan(
		&rec.ID,
		&rec.FirstAr, &rec.FatherAr, &rec.LastAr,
		&rec.FirstEn, &rec.LastEn,
		&rec.DOB,
		&rec.NationalID, &rec.Passport, &rec.Registration,
		&rec.Phone, &rec.Email, &rec.Nationality,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, perr.NotFoundf("citizen %d not found", id)
		}
		return nil, perr.FromPostgres(err, "registry citizen")
	}
	return &rec, nil
}

// CurrentLicense implements Storage
// most recent non-deleted, non-international license by issuance date,
// nil when the citizen has none
func (s *pg) CurrentLicense(ctx context.Context, citizenID int64) (*domain.License, error) {
	const licQ = `
		SELECT
			l.id, l.citizen_id,
			COALESCE(l.license_no, ''),
			COALESCE(l.license_type, ''),
			l.is_international,
			l.issuance_date,
			l.expiry_date
		FROM licenses l
		WHERE l.citizen_id = $1
			AND l.is_deleted = FALSE
			AND l.is_international = FALSE
		ORDER BY l.issuance_date DESC
		LIMIT 1
	`

	var lic domain.License
	err := s.q.QueryRow(ctx, licQ, citizenID).Scan(
		&lic.ID, &lic.CitizenID,
		&lic.LicenseNo, &lic.LicenseType,
		&lic.IsInternational,
		&lic.IssuanceDate,
		&lic.ExpiryDate,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, perr.FromPostgres(err, "registry current license")
	}

	const detQ = `
		SELECT d.id, d.license_id, COALESCE(d.vehicle_category, ''), d.issued_at, d.expires_at
		FROM license_details d
		WHERE d.license_id = $1 AND d.is_deleted = FALSE
		ORDER BY d.id
	`
	rows, err := s.q.Query(ctx, detQ, lic.ID)
	if err != nil {
		return nil, perr.FromPostgres(err, "registry license details query")
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.LicenseDetail
		if err := rows.Scan(&d.ID, &d.LicenseID, &d.VehicleCat, &d.IssuedAt, &d.ExpiresAt); err != nil {
			return nil, perr.FromPostgres(err, "registry license details scan")
		}
		lic.Details = append(lic.Details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgres(err, "registry license details rows")
	}

	return &lic, nil
}

func isNoRows(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "no rows in result set")
}
