package domain

import "fmt"

// VerificationStatus is the terminal state of one verification attempt.
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationSkipped  VerificationStatus = "skipped"
	VerificationFailed   VerificationStatus = "failed"
)

// VerificationOutcome is returned instead of an error so batch callers can
// inspect each result.
type VerificationOutcome struct {
	Contract string
	Network  string
	Address  string
	Status   VerificationStatus
	Reason   string
	Kind     VerificationErrorKind
}

func (o VerificationOutcome) String() string {
	switch o.Status {
	case VerificationVerified:
		return fmt.Sprintf("%s on %s verified (%s)", o.Contract, o.Network, o.Address)
	case VerificationSkipped:
		return fmt.Sprintf("%s on %s skipped: %s", o.Contract, o.Network, o.Reason)
	default:
		return fmt.Sprintf("%s on %s failed [%s]: %s", o.Contract, o.Network, o.Kind, o.Reason)
	}
}

// Ok reports whether the contract ended up verified.
func (o VerificationOutcome) Ok() bool { return o.Status == VerificationVerified }

// LedgerFilter narrows ledger listings. Empty fields match everything.
type LedgerFilter struct {
	Contract string
	Network  string
}
