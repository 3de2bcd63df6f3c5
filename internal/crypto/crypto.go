package crypto

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Encryptor encrypts and decrypts secrets stored at rest, currently the SMTP
// password in the settings store. Tokens are fernet strings, safe to keep in
// a text column.
type Encryptor struct {
	key *fernet.Key
}

// NewEncryptor creates an Encryptor from a base64-encoded fernet key.
//
// Parameters:
//   - encodedKey: The key as produced by fernet key generation
//
// Returns:
//   - *Encryptor: Encryptor ready for use
//   - error: If the key cannot be decoded
func NewEncryptor(encodedKey string) (*Encryptor, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}
	return &Encryptor{key: key}, nil
}

// Encrypt returns the fernet token for a plaintext secret.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), e.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt recovers the plaintext from a fernet token.
// Tokens do not expire; a zero TTL disables the freshness check.
func (e *Encryptor) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{e.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt secret: invalid token")
	}
	return string(plaintext), nil
}
