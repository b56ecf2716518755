package types

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	mimcbn254 "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// SaltLength is the size of an order salt in bytes
const SaltLength = 8

// Salt blinds the committed minimum output. It is read as a little-endian u64.
type Salt [SaltLength]byte

// NewSalt draws a random salt
func NewSalt() (Salt, error) {
	var s Salt
	if _, err := rand.Read(s[:]); err != nil {
		return Salt{}, fmt.Errorf("failed to read salt: %w", err)
	}
	return s, nil
}

// SaltFromUint64 encodes v as a salt
func SaltFromUint64(v uint64) Salt {
	var s Salt
	binary.LittleEndian.PutUint64(s[:], v)
	return s
}

// Uint64 returns the salt as the field value hashed into the commitment
func (s Salt) Uint64() uint64 {
	return binary.LittleEndian.Uint64(s[:])
}

// Commitment is the MiMC-BN254 digest sealing (minOut, salt), big-endian.
type Commitment [32]byte

// Commit seals minOut under salt. The same hash is constrained in the settle
// and cancel circuits, so the digest is the public commitment input.
func Commit(minOut uint64, salt Salt) Commitment {
	h := mimcbn254.NewMiMC()
	writeElement(h, minOut)
	writeElement(h, salt.Uint64())

	var c Commitment
	copy(c[:], h.Sum(nil))
	return c
}

func writeElement(h interface{ Write([]byte) (int, error) }, v uint64) {
	var el fr.Element
	el.SetUint64(v)
	b := el.Bytes()
	// canonical field encodings never fail to absorb
	_, _ = h.Write(b[:])
}

// Opens reports whether (minOut, salt) opens the commitment
func (c Commitment) Opens(minOut uint64, salt Salt) bool {
	expected := Commit(minOut, salt)
	return subtle.ConstantTimeCompare(c[:], expected[:]) == 1
}

// IsZero reports whether the commitment is unset
func (c Commitment) IsZero() bool {
	return c == Commitment{}
}

// BigInt returns the commitment as a field element value
func (c Commitment) BigInt() *big.Int {
	return new(big.Int).SetBytes(c[:])
}

// String implements fmt.Stringer
func (c Commitment) String() string {
	return hex.EncodeToString(c[:])
}

// MarshalText implements encoding.TextMarshaler
func (c Commitment) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Commitment) UnmarshalText(text []byte) error {
	return decodeFixedHex(text, c[:])
}

// ParseCommitment parses a hex encoded commitment
func ParseCommitment(s string) (Commitment, error) {
	var c Commitment
	err := c.UnmarshalText([]byte(s))
	return c, err
}

// MarshalText implements encoding.TextMarshaler
func (s Salt) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(s[:])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Salt) UnmarshalText(text []byte) error {
	return decodeFixedHex(text, s[:])
}

func decodeFixedHex(text []byte, dst []byte) error {
	if hex.DecodedLen(len(text)) != len(dst) {
		return fmt.Errorf("expected %d hex encoded bytes, got %d characters", len(dst), len(text))
	}
	if _, err := hex.Decode(dst, text); err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	return nil
}
