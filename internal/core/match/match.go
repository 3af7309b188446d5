package match

import (
	"sort"

	"civlink/internal/core/similarity"
)

// Scorer evaluates candidates against a query using an ordered rule ladder.
// The similarity function is injected so callers can swap implementations
type Scorer struct {
	sim similarity.Func
}

// NewScorer builds a Scorer; a nil sim falls back to the default metric
func NewScorer(sim similarity.Func) *Scorer {
	if sim == nil {
		sim = similarity.Default()
	}
	return &Scorer{sim: sim}
}

// Score thresholds and ceilings for the rule ladder
const (
	ceilingDocument     = 1.00
	ceilingRegistration = 0.95
	ceilingArabicName   = 0.90
	ceilingLatinName    = 0.75
	ceilingHypocorism   = 0.90
	ceilingFuzzyCap     = 0.89

	thresholdArabicSim = 0.92
	thresholdLatinSim  = 0.90
	thresholdFuzzy     = 0.85

	weightArabic = 0.7
	weightLatin  = 0.3

	bonusMobile = 0.03
)

// Score runs the rule ladder for one candidate. Rules only ever raise the
// running score (score = max(score, ceiling)); the mobile bonus is additive.
// The result is clamped to [0,1]
func (s *Scorer) Score(q Query, c Candidate) Scored {
	out := Scored{Candidate: c, Matched: map[string]bool{}}

	if q.NationalID != "" && q.NationalID == c.NationalID {
		out.raise(ceilingDocument, ReasonNationalID, "nationalId")
	}
	if q.Passport != "" && q.Passport == c.Passport {
		out.raise(ceilingDocument, ReasonPassport, "passport")
	}
	if q.Registration != "" && q.Registration == c.Registration {
		out.raise(ceilingRegistration, ReasonRegistration, "registration")
	}

	dob := sameDay(q.DOB, c.DOB)
	arSim, arOK := s.arabicTriplet(q, c)
	enSim, enOK := s.latinPair(q, c)

	if arOK && dob && arSim >= thresholdArabicSim {
		out.raise(ceilingArabicName, ReasonArabicComposite, "nameAr", "dateOfBirth")
	}
	if enOK && dob && enSim >= thresholdLatinSim {
		out.raise(ceilingLatinName, ReasonLatinComposite, "nameEn", "dateOfBirth")
	}
	if dob && s.hypocorismHit(q, c) {
		out.raise(ceilingHypocorism, ReasonHypocorism, "hypocorism", "dateOfBirth")
	}

	if out.Score < ceilingArabicName {
		weighted := weightArabic*arSim + weightLatin*enSim
		if weighted >= thresholdFuzzy {
			out.raise(min(weighted, ceilingFuzzyCap), ReasonFuzzyName, "fuzzyName")
		}
	}

	if q.Phone != "" && q.Phone == c.Phone {
		out.Score += bonusMobile
		out.Reasons = append(out.Reasons, ReasonMobileAux)
		out.Matched["phone"] = true
	}

	if out.Score > 1 {
		out.Score = 1
	}
	if out.Score < 0 {
		out.Score = 0
	}
	return out
}

// raise lifts the score to at least ceiling and records the reason
func (sc *Scored) raise(ceiling float64, reason Reason, fields ...string) {
	if ceiling > sc.Score {
		sc.Score = ceiling
	}
	sc.Reasons = append(sc.Reasons, reason)
	for _, f := range fields {
		sc.Matched[f] = true
	}
}

// arabicTriplet compares first+father+last componentwise and averages.
// ok is false unless both sides carry the full triplet
func (s *Scorer) arabicTriplet(q Query, c Candidate) (float64, bool) {
	if q.FirstAr == "" || q.FatherAr == "" || q.LastAr == "" {
		return 0, false
	}
	if c.FirstAr == "" || c.FatherAr == "" || c.LastAr == "" {
		return 0, false
	}
	sum := s.sim(q.FirstAr, c.FirstAr) + s.sim(q.FatherAr, c.FatherAr) + s.sim(q.LastAr, c.LastAr)
	return sum / 3, true
}

// latinPair compares first+last componentwise and averages
func (s *Scorer) latinPair(q Query, c Candidate) (float64, bool) {
	if q.FirstEn == "" || q.LastEn == "" || c.FirstEn == "" || c.LastEn == "" {
		return 0, false
	}
	return (s.sim(q.FirstEn, c.FirstEn) + s.sim(q.LastEn, c.LastEn)) / 2, true
}

// hypocorismHit reports whether any expanded variant equals the candidate's
// stored first name in the matching language
func (s *Scorer) hypocorismHit(q Query, c Candidate) bool {
	if c.FirstAr != "" {
		for _, v := range q.ArabicVariants {
			if v == c.FirstAr {
				return true
			}
		}
	}
	if c.FirstEn != "" {
		for _, v := range q.LatinVariants {
			if v == c.FirstEn {
				return true
			}
		}
	}
	return false
}

// Tier thresholds
const (
	tierHighFloor   = 0.90
	tierMediumFloor = 0.75
)

// TierFor maps a score to its confidence tier
func TierFor(score float64) Tier {
	switch {
	case score >= tierHighFloor:
		return TierHigh
	case score >= tierMediumFloor:
		return TierMedium
	default:
		return TierLow
	}
}

// Rank orders scored candidates by score descending, breaking ties by
// ascending candidate id so equal scores are deterministic, and assigns tiers
func Rank(scored []Scored) []Ranked {
	out := make([]Ranked, 0, len(scored))
	for _, sc := range scored {
		out = append(out, Ranked{Scored: sc, Tier: TierFor(sc.Score)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Candidate.ID < out[j].Candidate.ID
	})
	return out
}
