// Package domain defines the types and interfaces for the linking service
package domain

import "time"

// Status is the lifecycle state of an online identity
type Status string

// Online identity lifecycle states
const (
	StatusPending  Status = "PendingValidation"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Method records how a link was established
type Method string

// Link methods
const (
	MethodNationalID   Method = "NationalId"
	MethodPassport     Method = "Passport"
	MethodRegistration Method = "Registration"
	MethodComposite    Method = "Composite"
	MethodManual       Method = "Manual"
)

// Valid reports whether m is a known link method
func (m Method) Valid() bool {
	switch m {
	case MethodNationalID, MethodPassport, MethodRegistration, MethodComposite, MethodManual:
		return true
	}
	return false
}

// OnlineIdentity is a self-submitted identity row from the primary store
type OnlineIdentity struct {
	ID int64

	FirstAr  string
	FatherAr string
	LastAr   string
	FirstEn  string
	LastEn   string

	DOB        *time.Time
	NationalID string
	Email      string
	Phone      string

	Status      Status
	IsDeleted   bool
	ValidatedAt *time.Time
	ValidatedBy string
}

// Address is one address child record of an online identity
type Address struct {
	ID       int64
	OnlineID int64
	Emirate  string
	City     string
	Street   string
	POBox    string
}

// IdentityDocument is one document child record of an online identity
type IdentityDocument struct {
	ID       int64
	OnlineID int64
	DocType  string
	DocNo    string
	IssuedAt *time.Time
	Expires  *time.Time
}

// Signature is one captured signature image reference
type Signature struct {
	ID       int64
	OnlineID int64
	Path     string
}

// FaceImage is one captured face image reference
type FaceImage struct {
	ID       int64
	OnlineID int64
	Path     string
}

// Link is the persistent 1:1 association between an online and a local identity
type Link struct {
	ID         int64
	OnlineID   int64
	LocalID    int64
	Method     Method
	Confidence float64
	ActorID    string
	Note       string
	CreatedAt  time.Time
}

// LinkRequest is the operator input for LinkExisting
type LinkRequest struct {
	OnlineID   int64   `json:"online_id" validate:"required,gt=0"`
	LocalID    int64   `json:"local_id" validate:"required,gt=0"`
	Method     Method  `json:"method" validate:"required,oneof=NationalId Passport Registration Composite Manual"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
	Note       string  `json:"note,omitempty" validate:"omitempty,max=500"`
}

// SnapshotInfo describes the license snapshot copied during a link
type SnapshotInfo struct {
	LicenseID   int64 `json:"license_id"`
	DetailLines int   `json:"detail_lines"`
}

// LinkResult is what a successful Link or CreateAndLink returns
type LinkResult struct {
	Link     Link          `json:"link"`
	Snapshot *SnapshotInfo `json:"snapshot,omitempty"`
}

// CreationPayload is the identity-creation request sent to the gateway
// child records are clones with identity fields already zeroed
type CreationPayload struct {
	Citizen    OnlineIdentity     `json:"citizen"`
	Addresses  []Address          `json:"addresses"`
	Documents  []IdentityDocument `json:"identityDocuments"`
	Signatures []Signature        `json:"signatures"`
	FaceImages []FaceImage        `json:"faceImages"`
}
