package verification

import (
	"strings"

	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
)

var (
	successMarkers = []string{
		"contract successfully verified",
		"pass - verified",
	}
	alreadyVerifiedMarkers = []string{
		"already verified",
	}
	mismatchMarkers = []string{
		"bytecode does not match",
		"unable to verify",
		"does not match",
		"mismatch",
	}
	networkMarkers = []string{
		"connection refused",
		"error sending request",
		"timed out",
		"timeout",
		"rate limit",
		"max rate limit reached",
		"dns error",
	}
	rejectedMarkers = []string{
		"invalid api key",
		"missing or invalid api key",
		"notok",
		"failed to verify",
		"rejected",
		"not supported",
	}
)

// Classify turns verifier output into nil or a *domain.VerificationError
func Classify(verifier, output string, runErr error) error {
	lower := strings.ToLower(output)
	message := strings.TrimSpace(lastLine(output))

	switch {
	case containsAny(lower, alreadyVerifiedMarkers):
		return &domain.VerificationError{Verifier: verifier, Kind: domain.VerificationKindAlreadyVerified, Message: message}
	case runErr == nil && containsAny(lower, successMarkers):
		return nil
	case containsAny(lower, mismatchMarkers):
		return &domain.VerificationError{Verifier: verifier, Kind: domain.VerificationKindBytecodeMismatch, Message: message}
	case containsAny(lower, networkMarkers):
		return &domain.VerificationError{Verifier: verifier, Kind: domain.VerificationKindNetwork, Message: message}
	case containsAny(lower, rejectedMarkers):
		return &domain.VerificationError{Verifier: verifier, Kind: domain.VerificationKindRejected, Message: message}
	}

	if message == "" && runErr != nil {
		message = runErr.Error()
	}
	if runErr == nil {
		message = "verification status unclear: " + message
	}
	return &domain.VerificationError{Verifier: verifier, Kind: domain.VerificationKindUnknown, Message: message}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// lastLine returns the last non-empty line, which is where forge reports the outcome
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
