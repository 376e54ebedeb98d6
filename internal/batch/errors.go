package batch

import "errors"

var (
	// ErrNoTokens indicates the request asked for an empty drop.
	ErrNoTokens = errors.New("drop has no tokens")

	// ErrTooManyTokens indicates the request exceeds the per-drop cap.
	ErrTooManyTokens = errors.New("drop exceeds the token cap")

	// ErrPolicy indicates the review script failed during the policy pass.
	ErrPolicy = errors.New("drop policy failed")
)
