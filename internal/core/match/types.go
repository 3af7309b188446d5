// Package match implements candidate scoring and ranking for identity
// resolution. Inputs are canonicalized field values; the scorer runs an
// ordered rule ladder where each firing rule raises the running score to a
// fixed ceiling and records why
package match

import "time"

// Reason is a stable code explaining which rule contributed to a score
type Reason string

// Rule reason codes, in ladder priority order
const (
	ReasonNationalID      Reason = "NATIONAL_ID"
	ReasonPassport        Reason = "PASSPORT"
	ReasonRegistration    Reason = "REGISTRATION"
	ReasonArabicComposite Reason = "NAME_AR_DOB_COMPOSITE"
	ReasonLatinComposite  Reason = "NAME_EN_DOB_COMPOSITE"
	ReasonHypocorism      Reason = "HYPOCORISM_VARIANT"
	ReasonFuzzyName       Reason = "FUZZY_NAME"
	ReasonMobileAux       Reason = "MOBILE_AUX"
)

// Tier labels a score band for operator review
type Tier string

// Confidence tiers; thresholds live in Rank
const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// Query carries the canonicalized search evidence. Empty strings and nil DOB
// mean the field was absent or unparsable and must not contribute
type Query struct {
	NationalID   string
	Passport     string
	Registration string

	FirstAr  string
	FatherAr string
	LastAr   string
	MotherAr string

	FirstEn string
	LastEn  string

	DOB   *time.Time
	Phone string

	// Hypocorism variants of the first names, already canonicalized
	ArabicVariants []string
	LatinVariants  []string
}

// Candidate is the canonicalized projection of an authoritative record
type Candidate struct {
	ID int64

	NationalID   string
	Passport     string
	Registration string

	FirstAr  string
	FatherAr string
	LastAr   string

	FirstEn string
	LastEn  string

	DOB         *time.Time
	Phone       string
	Nationality string
}

// Scored is a candidate with its bounded score and explainability data
type Scored struct {
	Candidate Candidate
	Score     float64
	Reasons   []Reason
	Matched   map[string]bool
}

// Ranked attaches the confidence tier after ordering
type Ranked struct {
	Scored
	Tier Tier
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
