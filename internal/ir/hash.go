package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainModel = "fedeck/model/v1"
	DomainDeck  = "fedeck/deck/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ModelHash computes the content hash of a model.
// Two models with equal tables hash identically regardless of map order.
func ModelHash(m *Model) (string, error) {
	canonical, err := MarshalCanonical(CanonicalModel(m))
	if err != nil {
		return "", fmt.Errorf("ModelHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainModel, canonical), nil
}

// DeckHash computes the content hash of a generated deck.
func DeckHash(target string, deck []byte) string {
	data := make([]byte, 0, len(target)+1+len(deck))
	data = append(data, target...)
	data = append(data, 0x00)
	data = append(data, deck...)
	return hashWithDomain(DomainDeck, data)
}

// MustModelHash is like ModelHash but panics on error.
// Use only in tests or when the model is known to be finite.
func MustModelHash(m *Model) string {
	h, err := ModelHash(m)
	if err != nil {
		panic(err)
	}
	return h
}
