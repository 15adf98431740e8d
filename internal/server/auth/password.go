package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/dkrasnovs/filestash/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2-SHA256 parameters baked into newly issued hash records.
	// Verification always uses the parameters stored in the record, so these
	// can change without breaking existing accounts.
	hashAlgorithm  = "pbkdf2-sha256"
	hashIterations = 100_000
	saltSize       = 16 // 128-bit
	keySize        = 32 // 256-bit

	// Upper bound accepted when parsing stored records, so a corrupted or
	// hostile record cannot pin the CPU during verification.
	maxIterations = 10_000_000
)

// HashRecord is the parsed form of a stored password hash: algorithm id,
// iteration count, salt, and derived key.
type HashRecord struct {
	Algorithm  string
	Iterations int
	Salt       []byte
	Key        []byte
}

// Encode serializes the record into the self-describing dot-separated string
// stored in the registry: "pbkdf2-sha256.<iterations>.<salt b64>.<key b64>".
func (r *HashRecord) Encode() string {
	return fmt.Sprintf("%s.%d.%s.%s",
		r.Algorithm,
		r.Iterations,
		base64.StdEncoding.EncodeToString(r.Salt),
		base64.StdEncoding.EncodeToString(r.Key),
	)
}

// ParseHashRecord parses an encoded hash record. Any structural problem
// (wrong part count, unknown algorithm, bad iteration count, bad base64)
// yields an error; callers verifying passwords must treat that as
// "not verified", never as a crash.
func ParseHashRecord(s string) (*HashRecord, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return nil, fmt.Errorf("hash record: expected 4 parts, got %d", len(parts))
	}
	if parts[0] != hashAlgorithm {
		return nil, fmt.Errorf("hash record: unknown algorithm %q", parts[0])
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("hash record: iterations: %w", err)
	}
	if iterations <= 0 || iterations > maxIterations {
		return nil, fmt.Errorf("hash record: iterations out of bounds: %d", iterations)
	}
	salt, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("hash record: salt: %w", err)
	}
	key, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, fmt.Errorf("hash record: key: %w", err)
	}
	if len(salt) == 0 || len(key) == 0 {
		return nil, fmt.Errorf("hash record: empty salt or key")
	}
	return &HashRecord{Algorithm: parts[0], Iterations: iterations, Salt: salt, Key: key}, nil
}

// HashPassword derives a fresh hash record for the given password using a
// random salt and the current default parameters.
func HashPassword(password string) string {
	salt := common.GenerateRandByteArray(saltSize)
	key := pbkdf2.Key([]byte(password), salt, hashIterations, keySize, sha256.New)
	r := &HashRecord{Algorithm: hashAlgorithm, Iterations: hashIterations, Salt: salt, Key: key}
	return r.Encode()
}

// VerifyPassword checks password against an encoded hash record. It fails
// closed: malformed records verify as false, never as an error.
func VerifyPassword(encoded, password string) bool {
	r, err := ParseHashRecord(encoded)
	if err != nil {
		return false
	}
	candidate := pbkdf2.Key([]byte(password), r.Salt, r.Iterations, len(r.Key), sha256.New)
	return subtle.ConstantTimeCompare(candidate, r.Key) == 1
}
