package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"ambassador_portal/internal/common"
	"ambassador_portal/internal/domain/repository"

	"github.com/gosimple/slug"
)

const (
	defaultCodePrefix = "AMB"
	codeMaxAttempts   = 6
	codeSuffixBytes   = 3
)

// ReferralCodeGenerator produces unique, human-readable referral codes such
// as AMB-9F2C1A: a prefix derived from the registrant's name plus a random
// hex suffix, collision-checked against the ambassador store.
type ReferralCodeGenerator struct {
	ambassadorRepo repository.AmbassadorRepository
}

func NewReferralCodeGenerator(ambassadorRepo repository.AmbassadorRepository) *ReferralCodeGenerator {
	return &ReferralCodeGenerator{ambassadorRepo: ambassadorRepo}
}

// Generate builds candidate codes until one is free, bounded by
// codeMaxAttempts. Exhaustion maps to a retryable 503 at the boundary; the
// store's unique index remains the authoritative backstop for races between
// the check and the insert.
func (g *ReferralCodeGenerator) Generate(ctx context.Context, seedName string) (string, error) {
	for attempts := 0; attempts < codeMaxAttempts; attempts++ {
		candidate, err := buildCode(seedName)
		if err != nil {
			return "", fmt.Errorf("failed to build referral code: %w", err)
		}
		exists, err := g.ambassadorRepo.ReferralCodeExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check referral code uniqueness: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", common.ErrCodeGenExhausted
}

// buildCode derives the prefix from the first three letters of the
// slug-normalized name (latinized, so accented and non-Latin names still
// yield a usable prefix), falling back to a fixed default when the name
// contains no letters.
func buildCode(seedName string) (string, error) {
	prefix := codePrefix(seedName)

	buf := make([]byte, codeSuffixBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	suffix := strings.ToUpper(hex.EncodeToString(buf))

	return prefix + "-" + suffix, nil
}

func codePrefix(seedName string) string {
	var letters []rune
	for _, r := range slug.Make(seedName) {
		if r >= 'a' && r <= 'z' {
			letters = append(letters, r)
			if len(letters) == 3 {
				break
			}
		}
	}
	if len(letters) == 0 {
		return defaultCodePrefix
	}
	return strings.ToUpper(string(letters))
}
