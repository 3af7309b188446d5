// Package domain defines the types and interfaces for the registry service
package domain

import "time"

// Query carries the normalized search evidence used for retrieval
// empty strings and nil DOB mean the field was absent after normalization
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

	// Hypocorism variants of the normalized first names
	ArabicVariants []string
	LatinVariants  []string
}

// CandidateRecord is the projection of one authoritative citizen row
type CandidateRecord struct {
	ID int64

	FirstAr  string
	FatherAr string
	LastAr   string

	FirstEn string
	LastEn  string

	DOB *time.Time

	NationalID   string
	Passport     string
	Registration string

	Phone       string
	Email       string
	Nationality string
}

// License is an authoritative license row plus its detail lines
type License struct {
	ID              int64
	CitizenID       int64
	LicenseNo       string
	LicenseType     string
	IsInternational bool
	IssuanceDate    time.Time
	ExpiryDate      *time.Time

	Details []LicenseDetail
}

// LicenseDetail is one non-deleted detail line of a license
type LicenseDetail struct {
	ID         int64
	LicenseID  int64
	VehicleCat string
	IssuedAt   time.Time
	ExpiresAt  *time.Time
}
