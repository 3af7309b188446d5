// Package domain holds DTOs for resolve service and http contracts
package domain

// SearchInput is the raw operator search submission
// all fields optional; absent fields exclude their retrieval strategies
type SearchInput struct {
	NationalID   string `json:"national_id,omitempty" validate:"omitempty,max=64" example:"100200300"`
	Passport     string `json:"passport_no,omitempty" validate:"omitempty,max=64" example:"N1234567"`
	Registration string `json:"registration_no,omitempty" validate:"omitempty,max=64" example:"REG-77"`

	FirstNameAr  string `json:"first_name_ar,omitempty" validate:"omitempty,max=120" example:"محمد"`
	FatherNameAr string `json:"father_name_ar,omitempty" validate:"omitempty,max=120" example:"علي"`
	LastNameAr   string `json:"last_name_ar,omitempty" validate:"omitempty,max=120" example:"حسن"`
	MotherNameAr string `json:"mother_name_ar,omitempty" validate:"omitempty,max=120" example:"فاطمة"`

	FirstNameEn string `json:"first_name_en,omitempty" validate:"omitempty,max=120" example:"Mohamed"`
	LastNameEn  string `json:"last_name_en,omitempty" validate:"omitempty,max=120" example:"Hassan"`

	DateOfBirth string `json:"date_of_birth,omitempty" validate:"omitempty,max=40" example:"1990-05-01"`
	Mobile      string `json:"mobile,omitempty" validate:"omitempty,max=32" example:"+971 50 123 4567"`
}

// RankedCandidate is one scored and tiered result row
type RankedCandidate struct {
	LocalID      int64           `json:"local_id"`
	FirstNameAr  string          `json:"first_name_ar,omitempty"`
	FatherNameAr string          `json:"father_name_ar,omitempty"`
	LastNameAr   string          `json:"last_name_ar,omitempty"`
	FirstNameEn  string          `json:"first_name_en,omitempty"`
	LastNameEn   string          `json:"last_name_en,omitempty"`
	DateOfBirth  string          `json:"date_of_birth,omitempty"`
	NationalID   string          `json:"national_id,omitempty"`
	Nationality  string          `json:"nationality,omitempty"`
	Score        float64         `json:"score"`
	Tier         string          `json:"tier"`
	Reasons      []string        `json:"reasons"`
	Matched      map[string]bool `json:"matched,omitempty"`
}

// NormalizedEcho shows the canonical values actually used for matching
type NormalizedEcho struct {
	NationalID   string `json:"national_id,omitempty"`
	Passport     string `json:"passport_no,omitempty"`
	Registration string `json:"registration_no,omitempty"`
	FirstNameAr  string `json:"first_name_ar,omitempty"`
	FatherNameAr string `json:"father_name_ar,omitempty"`
	LastNameAr   string `json:"last_name_ar,omitempty"`
	FirstNameEn  string `json:"first_name_en,omitempty"`
	LastNameEn   string `json:"last_name_en,omitempty"`
	DateOfBirth  string `json:"date_of_birth,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
}

// Audit carries timing and normalization metadata for one search
type Audit struct {
	ElapsedMs         int64          `json:"elapsed_ms"`
	Normalized        NormalizedEcho `json:"normalized"`
	HypocorismApplied bool           `json:"hypocorism_applied"`
}

// SearchResult is the complete response of SearchLocal
type SearchResult struct {
	Results []RankedCandidate `json:"results"`
	Audit   Audit             `json:"audit"`
}
