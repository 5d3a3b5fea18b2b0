package creds

import "errors"

var (
	// ErrInvalidInput is returned when a caller supplies missing or empty
	// credential material. It fails fast, before any network call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthFailed is returned when the secret backend is reachable but
	// rejects the supplied access token.
	ErrAuthFailed = errors.New("backend authentication failed")

	// ErrVerificationFailed is returned when a write appeared to succeed but
	// the read-back verification returned missing or empty data.
	ErrVerificationFailed = errors.New("read-back verification failed")

	// ErrPlatformUnreachable is returned when the orchestration platform's
	// control plane cannot be reached during token propagation.
	ErrPlatformUnreachable = errors.New("platform unreachable")
)
