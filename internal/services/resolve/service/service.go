// Package service implements the identity search pipeline:
// normalize, expand hypocorisms, retrieve, score, rank
package service

import (
	"context"
	"time"

	"civlink/internal/core/hypocorism"
	"civlink/internal/core/match"
	"civlink/internal/core/normalize"
	"civlink/internal/platform/logger"
	pnet "civlink/internal/platform/net"
	regdom "civlink/internal/services/registry/domain"
	dom "civlink/internal/services/resolve/domain"
	"civlink/internal/services/resolve/repo"
)

// Service implements domain.SearcherPort
type Service struct {
	Registry regdom.ReaderPort
	Scorer   *match.Scorer
	Dict     *hypocorism.Dict
	Audit    repo.AuditSink
	Log      logger.Logger
}

// New constructs a resolve service
// nil Dict falls back to the embedded dictionary, nil Audit to a no-op sink
func New(reg regdom.ReaderPort, scorer *match.Scorer, dict *hypocorism.Dict, audit repo.AuditSink, log logger.Logger) *Service {
	if scorer == nil {
		scorer = match.NewScorer(nil)
	}
	if dict == nil {
		dict = hypocorism.MustDefault()
	}
	if audit == nil {
		audit = repo.NewCH(nil)
	}
	return &Service{Registry: reg, Scorer: scorer, Dict: dict, Audit: audit, Log: log}
}

// SearchLocal implements domain.SearcherPort
func (s *Service) SearchLocal(ctx context.Context, in dom.SearchInput) (dom.SearchResult, error) {
	started := time.Now()

	echo, q := normalizeInput(in)

	set := s.Dict.Expand(q.FirstAr, q.FirstEn)
	q.ArabicVariants = set.Arabic
	q.LatinVariants = set.Latin

	pool, err := s.Registry.Candidates(ctx, q)
	if err != nil {
		return dom.SearchResult{}, err
	}

	mq := matchQuery(q)
	scored := make([]match.Scored, 0, len(pool))
	for _, rec := range pool {
		scored = append(scored, s.Scorer.Score(mq, matchCandidate(rec)))
	}
	ranked := match.Rank(scored)

	out := dom.SearchResult{
		Results: make([]dom.RankedCandidate, 0, len(ranked)),
		Audit: dom.Audit{
			ElapsedMs:         time.Since(started).Milliseconds(),
			Normalized:        echo,
			HypocorismApplied: set.Applied,
		},
	}
	for _, r := range ranked {
		out.Results = append(out.Results, toDTO(r))
	}

	s.audit(ctx, echo, out)
	return out, nil
}

// audit appends a search audit row, best effort
func (s *Service) audit(ctx context.Context, echo dom.NormalizedEcho, res dom.SearchResult) {
	row := repo.AuditRow{
		At:                time.Now().UTC(),
		RequestID:         pnet.RequestID(ctx),
		ElapsedMs:         res.Audit.ElapsedMs,
		FieldsPresent:     fieldsPresent(echo),
		HypocorismApplied: res.Audit.HypocorismApplied,
		ResultCount:       int64(len(res.Results)),
	}
	if err := s.Audit.Write(ctx, row); err != nil {
		s.Log.Warn().Err(err).Msg("search audit write failed")
	}
}

// normalizeInput canonicalizes each raw field per its type
// unparsable DOB degrades to absent rather than erroring
func normalizeInput(in dom.SearchInput) (dom.NormalizedEcho, regdom.Query) {
	q := regdom.Query{
		NationalID:   normalize.Document(in.NationalID),
		Passport:     normalize.Document(in.Passport),
		Registration: normalize.Document(in.Registration),
		FirstAr:      normalize.Arabic(in.FirstNameAr),
		FatherAr:     normalize.Arabic(in.FatherNameAr),
		LastAr:       normalize.Arabic(in.LastNameAr),
		MotherAr:     normalize.Arabic(in.MotherNameAr),
		FirstEn:      normalize.Latin(in.FirstNameEn),
		LastEn:       normalize.Latin(in.LastNameEn),
		Phone:        normalize.Digits(in.Mobile),
	}
	var dobEcho string
	if d, ok := normalize.Date(in.DateOfBirth); ok {
		q.DOB = &d
		dobEcho = d.Format("2006-01-02")
	}

	echo := dom.NormalizedEcho{
		NationalID:   q.NationalID,
		Passport:     q.Passport,
		Registration: q.Registration,
		FirstNameAr:  q.FirstAr,
		FatherNameAr: q.FatherAr,
		LastNameAr:   q.LastAr,
		FirstNameEn:  q.FirstEn,
		LastNameEn:   q.LastEn,
		DateOfBirth:  dobEcho,
		Mobile:       q.Phone,
	}
	return echo, q
}

// matchQuery projects the retrieval query into scorer input
func matchQuery(q regdom.Query) match.Query {
	return match.Query{
		NationalID:     q.NationalID,
		Passport:       q.Passport,
		Registration:   q.Registration,
		FirstAr:        q.FirstAr,
		FatherAr:       q.FatherAr,
		LastAr:         q.LastAr,
		MotherAr:       q.MotherAr,
		FirstEn:        q.FirstEn,
		LastEn:         q.LastEn,
		DOB:            q.DOB,
		Phone:          q.Phone,
		ArabicVariants: q.ArabicVariants,
		LatinVariants:  q.LatinVariants,
	}
}

// matchCandidate canonicalizes stored values so scoring never depends on
// registry ingest hygiene
func matchCandidate(rec regdom.CandidateRecord) match.Candidate {
	return match.Candidate{
		ID:           rec.ID,
		NationalID:   normalize.Document(rec.NationalID),
		Passport:     normalize.Document(rec.Passport),
		Registration: normalize.Document(rec.Registration),
		FirstAr:      normalize.Arabic(rec.FirstAr),
		FatherAr:     normalize.Arabic(rec.FatherAr),
		LastAr:       normalize.Arabic(rec.LastAr),
		FirstEn:      normalize.Latin(rec.FirstEn),
		LastEn:       normalize.Latin(rec.LastEn),
		DOB:          rec.DOB,
		Phone:        normalize.Digits(rec.Phone),
		Nationality:  rec.Nationality,
	}
}

func toDTO(r match.Ranked) dom.RankedCandidate {
	reasons := make([]string, 0, len(r.Reasons))
	for _, rs := range r.Reasons {
		reasons = append(reasons, string(rs))
	}
	var dob string
	if r.Candidate.DOB != nil {
		dob = r.Candidate.DOB.Format("2006-01-02")
	}
	return dom.RankedCandidate{
		LocalID:      r.Candidate.ID,
		FirstNameAr:  r.Candidate.FirstAr,
		FatherNameAr: r.Candidate.FatherAr,
		LastNameAr:   r.Candidate.LastAr,
		FirstNameEn:  r.Candidate.FirstEn,
		LastNameEn:   r.Candidate.LastEn,
		DateOfBirth:  dob,
		NationalID:   r.Candidate.NationalID,
		Nationality:  r.Candidate.Nationality,
		Score:        r.Score,
		Tier:         string(r.Tier),
		Reasons:      reasons,
		Matched:      r.Matched,
	}
}

// fieldsPresent lists which normalized fields survived for the audit stream
func fieldsPresent(e dom.NormalizedEcho) []string {
	var out []string
	add := func(name, v string) {
		if v != "" {
			out = append(out, name)
		}
	}
	add("national_id", e.NationalID)
	add("passport_no", e.Passport)
	add("registration_no", e.Registration)
	add("first_name_ar", e.FirstNameAr)
	add("father_name_ar", e.FatherNameAr)
	add("last_name_ar", e.LastNameAr)
	add("first_name_en", e.FirstNameEn)
	add("last_name_en", e.LastNameEn)
	add("date_of_birth", e.DateOfBirth)
	add("mobile", e.Mobile)
	return out
}
