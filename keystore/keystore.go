// Package keystore persists the administrator capability-signing key
// encrypted at rest with Argon2id + AES-256-GCM.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters for key encryption.
	argon2Time        = 3
	argon2Memory      = 64 * 1024 // 64 MB
	argon2Parallelism = 4
	argon2KeyLen      = 32

	// Encryption format sizes.
	saltLen     = 16
	nonceLen    = 12
	checksumLen = 4
)

// EncryptKey encrypts the signing key with Argon2id + AES-256-GCM.
//
// Output format: salt(16B) || nonce(12B) || AES-GCM(argon2id(password,salt), nonce, key||checksum)
//
// The checksum is SHA256(key bytes)[:4] for verifying correct decryption.
func EncryptKey(priv *ec.PrivateKey, password string) ([]byte, error) {
	if priv == nil {
		return nil, ErrNilKey
	}
	keyBytes := priv.Serialize()

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("keystore: generate salt: %w", err)
	}

	derived := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Parallelism, argon2KeyLen)

	sum := sha256.Sum256(keyBytes)
	plaintext := make([]byte, 0, len(keyBytes)+checksumLen)
	plaintext = append(plaintext, keyBytes...)
	plaintext = append(plaintext, sum[:checksumLen]...)

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("keystore: AES cipher creation: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("keystore: GCM creation: %w", err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("keystore: generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, saltLen+nonceLen+len(ciphertext))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// DecryptKey reverses EncryptKey and verifies the embedded checksum.
func DecryptKey(encrypted []byte, password string) (*ec.PrivateKey, error) {
	if len(encrypted) < saltLen+nonceLen+checksumLen {
		return nil, ErrDecryptionFailed
	}

	salt := encrypted[:saltLen]
	nonce := encrypted[saltLen : saltLen+nonceLen]
	ciphertext := encrypted[saltLen+nonceLen:]

	derived := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Parallelism, argon2KeyLen)

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(plaintext) < checksumLen {
		return nil, ErrDecryptionFailed
	}

	keyBytes := plaintext[:len(plaintext)-checksumLen]
	stored := plaintext[len(plaintext)-checksumLen:]
	sum := sha256.Sum256(keyBytes)
	for i := 0; i < checksumLen; i++ {
		if stored[i] != sum[i] {
			return nil, ErrChecksumMismatch
		}
	}

	priv, _ := ec.PrivateKeyFromBytes(keyBytes)
	if priv == nil {
		return nil, ErrDecryptionFailed
	}
	return priv, nil
}

// SaveKey encrypts the key and writes it to path with mode 0600.
// The parent directory is created if it does not exist.
func SaveKey(path string, priv *ec.PrivateKey, password string) error {
	data, err := EncryptKey(priv, password)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("keystore: create directory: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// LoadKey reads and decrypts the key at path.
func LoadKey(path string, password string) (*ec.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("keystore: read key file: %w", err)
	}
	return DecryptKey(data, password)
}
