package capability

import "errors"

var (
	// ErrNilKey indicates a nil key was supplied.
	ErrNilKey = errors.New("capability: nil key")

	// ErrNoSigner indicates no signing key is configured.
	ErrNoSigner = errors.New("capability: no signer key configured")

	// ErrMalformedSignature indicates the signature bytes could not be parsed.
	ErrMalformedSignature = errors.New("capability: malformed signature")

	// ErrSignatureInvalid indicates the signature does not match the signer key.
	ErrSignatureInvalid = errors.New("capability: signature invalid")
)
