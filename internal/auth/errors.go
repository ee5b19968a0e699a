package auth

import "errors"

var (
	ErrNoToken         = errors.New("auth: no saved token, run `drivemirror login` first")
	ErrStateMismatch   = errors.New("auth: oauth state mismatch")
	ErrConsentDenied   = errors.New("auth: consent denied")
	ErrMissingAuthCode = errors.New("auth: authorization code missing")
)
