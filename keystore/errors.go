package keystore

import "errors"

var (
	// ErrNilKey indicates a nil private key was supplied.
	ErrNilKey = errors.New("keystore: nil private key")

	// ErrKeyNotFound indicates no key file exists at the given path.
	ErrKeyNotFound = errors.New("keystore: key file not found")

	// ErrDecryptionFailed indicates the key could not be decrypted.
	ErrDecryptionFailed = errors.New("keystore: decryption failed")

	// ErrChecksumMismatch indicates the decrypted key failed its checksum.
	ErrChecksumMismatch = errors.New("keystore: checksum mismatch")
)
