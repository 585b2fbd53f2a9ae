// Package signature implements the /DP and /SV operations: signing and
// verifying a memory image's contents with RSA or Ed25519 keys.
package signature

import "fmt"

// UnsupportedMethodError is returned by Sign and Verify for a Method value
// that is not one of the eight defined schemes; Method is then -1. The DP
// and SV codepoint mappers report an unknown codepoint through their bool
// result instead.
type UnsupportedMethodError struct {
	Method int
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported signature method %d", e.Method)
}

// KeyLoadError wraps a failure to locate or parse key material.
type KeyLoadError struct {
	Reason string
}

func (e *KeyLoadError) Error() string {
	return fmt.Sprintf("signature key: %s", e.Reason)
}

// SignatureLoadError wraps a failure to locate or decode signature bytes.
type SignatureLoadError struct {
	Reason string
}

func (e *SignatureLoadError) Error() string {
	return fmt.Sprintf("signature data: %s", e.Reason)
}

// VerificationError means the signature did not validate against the
// payload and key.
type VerificationError struct {
	Reason string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("signature verification failed: %s", e.Reason)
}

// PlacementError mirrors checksum.PlacementError for signature placement,
// which additionally rejects TargetFile.
type PlacementError struct {
	Reason string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("signature placement: %s", e.Reason)
}
