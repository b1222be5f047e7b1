package errors

import "errors"

var (
	ErrAuthenticationMissing = errors.New("authenticated signer is required to create a poll")
	ErrOutboxConflict        = errors.New("outbox message conflict")
)
