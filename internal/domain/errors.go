package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrArtifactNotFound is returned when no compiled artifact matches a contract name
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrUnresolvedLibrary is returned when bytecode references a library with no supplied address
	ErrUnresolvedLibrary = errors.New("unresolved library link")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNetworkNotConfigured is returned when a network is missing from safecoin.toml
	ErrNetworkNotConfigured = errors.New("network not configured")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")

	// ErrAlreadyVerified is returned by verifiers when the explorer already has the source
	ErrAlreadyVerified = errors.New("already verified")
)

// ConfigurationError aborts a deployment before anything is sent on-chain.
type ConfigurationError struct {
	Contract string
	Reason   string
	Err      error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration error for %s: %s", e.Contract, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NewUnresolvedLibrariesError reports every library link that has no address.
func NewUnresolvedLibrariesError(contract string, missing []string) *ConfigurationError {
	sorted := append([]string(nil), missing...)
	sort.Strings(sorted)
	return &ConfigurationError{
		Contract: contract,
		Reason:   fmt.Sprintf("no address supplied for libraries [%s]", strings.Join(sorted, ", ")),
		Err:      ErrUnresolvedLibrary,
	}
}

// OnChainStage identifies where an on-chain failure happened.
type OnChainStage string

const (
	StageSubmit  OnChainStage = "submit"
	StageConfirm OnChainStage = "confirm"
	StageExecute OnChainStage = "execute"
)

// OnChainError is a fatal failure of the current deployment attempt. Nothing
// has been recorded, so the whole operation is safe to retry.
type OnChainError struct {
	Contract string
	Stage    OnChainStage
	TxHash   string
	Reason   string
	Err      error
}

func (e *OnChainError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "deployment of %s failed during %s", e.Contract, e.Stage)
	if e.TxHash != "" {
		fmt.Fprintf(&b, " (tx %s)", e.TxHash)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *OnChainError) Unwrap() error { return e.Err }

// UnrecordedDeploymentError means the contract exists on-chain but the ledger
// write failed. Re-running the deployment would create a second instance.
type UnrecordedDeploymentError struct {
	Contract string
	Network  string
	Address  string
	Deployer string
	Err      error
}

func (e *UnrecordedDeploymentError) Error() string {
	return fmt.Sprintf("%s deployed on %s at %s but NOT recorded in the ledger: %v",
		e.Contract, e.Network, e.Address, e.Err)
}

func (e *UnrecordedDeploymentError) Unwrap() error { return e.Err }

// VerificationErrorKind classifies verification service rejections.
type VerificationErrorKind string

const (
	VerificationKindAlreadyVerified  VerificationErrorKind = "already-verified"
	VerificationKindBytecodeMismatch VerificationErrorKind = "bytecode-mismatch"
	VerificationKindRejected         VerificationErrorKind = "rejected"
	VerificationKindNetwork          VerificationErrorKind = "network"
	VerificationKindUnknown          VerificationErrorKind = "unknown"

	// Skip kinds. The verifier was never called.
	VerificationKindNotRecorded  VerificationErrorKind = "not-recorded"
	VerificationKindLocalNetwork VerificationErrorKind = "local-network"
)

// VerificationError is a structured rejection from a verification service.
type VerificationError struct {
	Verifier string
	Kind     VerificationErrorKind
	Message  string
}

func (e *VerificationError) Error() string {
	if e.Verifier != "" {
		return fmt.Sprintf("%s: %s: %s", e.Verifier, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *VerificationError) Is(target error) bool {
	switch target {
	case ErrVerificationFailed:
		return true
	case ErrAlreadyVerified:
		return e.Kind == VerificationKindAlreadyVerified
	}
	return false
}
