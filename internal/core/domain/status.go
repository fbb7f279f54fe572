package domain

import "strings"

// StatusKind is the closed part of a payment status
type StatusKind int

const (
	StatusPending StatusKind = iota
	StatusApproved
	StatusOther
)

// Raw values written by this service or branched on
const (
	RawPending  = "PENDING"
	RawApproved = "approved"
)

// OpenStatuses are the lower-cased provider statuses that can still end in
// approval. Rows holding one of them are re-checked by the sweeper.
var OpenStatuses = []string{"pending", "in_process", "authorized"}

// PaymentStatus is Pending, Approved or Other(raw). The provider owns the
// vocabulary so unknown values are kept verbatim instead of rejected.
type PaymentStatus struct {
	Kind StatusKind
	raw  string
}

var (
	Pending  = PaymentStatus{Kind: StatusPending, raw: RawPending}
	Approved = PaymentStatus{Kind: StatusApproved, raw: RawApproved}
)

// ParseStatus maps a stored or provider status string. Approval is an exact
// match on the provider's value so the check agrees with ledger queries.
func ParseStatus(raw string) PaymentStatus {
	switch {
	case raw == RawApproved:
		return PaymentStatus{Kind: StatusApproved, raw: raw}
	case strings.EqualFold(raw, RawPending):
		return PaymentStatus{Kind: StatusPending, raw: raw}
	}
	return PaymentStatus{Kind: StatusOther, raw: raw}
}

// String returns the raw value as received
func (s PaymentStatus) String() string { return s.raw }

// IsApproved reports the terminal settled-in-favour state
func (s PaymentStatus) IsApproved() bool { return s.Kind == StatusApproved }

// IsPending reports a payment nobody has paid yet
func (s PaymentStatus) IsPending() bool { return s.Kind == StatusPending }

