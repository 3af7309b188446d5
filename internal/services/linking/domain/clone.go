package domain

// Per-entity clone helpers for the creation payload. Each returns a copy with
// the identity fields (row id, parent id) zeroed so the gateway mints new rows
// instead of referencing the originals. Which fields count as identity is a
// compile-time decision here, on purpose.

// CloneAddress copies an address with identity fields zeroed
func CloneAddress(a Address) Address {
	a.ID = 0
	a.OnlineID = 0
	return a
}

// CloneDocument copies an identity document with identity fields zeroed
func CloneDocument(d IdentityDocument) IdentityDocument {
	d.ID = 0
	d.OnlineID = 0
	return d
}

// CloneSignature copies a signature with identity fields zeroed
func CloneSignature(s Signature) Signature {
	s.ID = 0
	s.OnlineID = 0
	return s
}

// CloneFaceImage copies a face image with identity fields zeroed
func CloneFaceImage(f FaceImage) FaceImage {
	f.ID = 0
	f.OnlineID = 0
	return f
}

// CloneCitizen copies the online identity with row identity and lifecycle
// bookkeeping zeroed for submission to the gateway
func CloneCitizen(o OnlineIdentity) OnlineIdentity {
	o.ID = 0
	o.Status = ""
	o.IsDeleted = false
	o.ValidatedAt = nil
	o.ValidatedBy = ""
	return o
}
