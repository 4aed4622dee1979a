package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for different entity types (Stripe-style)
const (
	PrefixUser         = "usr"
	PrefixToken        = "tok"
	PrefixConsent      = "cons"
	PrefixTriage       = "trg"
	PrefixTeleRequest  = "tele"
	PrefixPrescription = "rx"
	PrefixComplaint    = "cmp"
	PrefixEvidence     = "evd"
	PrefixAnchor       = "anch"
	PrefixAnalytics    = "ev"
	PrefixMessage      = "msg"
	PrefixNeuroscreen  = "nsr"
	PrefixVaccination  = "vax"
	PrefixTherapyMod   = "thm"
	PrefixTherapyPack  = "thp"
)

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
// Use this only when you're certain the generation won't fail.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
// This follows the Stripe-style ID pattern for human-readable identifiers.
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// MustGenerateWithPrefix creates a prefixed ID and panics on error.
func MustGenerateWithPrefix(prefix string, length int) string {
	id, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}

// FormatWithPrefix adds a prefix to an existing short ID.
// Example: FormatWithPrefix("cmp", "xK9mP2vL3nQ") returns "cmp_xK9mP2vL3nQ"
func FormatWithPrefix(prefix, shortID string) string {
	if shortID == "" {
		return ""
	}
	return fmt.Sprintf("%s_%s", prefix, shortID)
}

// ParsePrefixedID extracts the prefix and short ID from a prefixed ID string.
// Example: ParsePrefixedID("cmp_xK9mP2vL3nQ") returns ("cmp", "xK9mP2vL3nQ", nil)
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	parts := strings.SplitN(prefixedID, "_", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	return parts[0], parts[1], nil
}

// ValidatePrefix checks if the prefixed ID has the expected prefix.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, _, err := ParsePrefixedID(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	return nil
}

// ExtractShortID extracts the short ID from a prefixed ID, validating the prefix.
// Example: ExtractShortID("cmp_xK9mP2vL3nQ", "cmp") returns "xK9mP2vL3nQ"
func ExtractShortID(prefixedID, expectedPrefix string) (string, error) {
	if err := ValidatePrefix(prefixedID, expectedPrefix); err != nil {
		return "", err
	}
	_, shortID, _ := ParsePrefixedID(prefixedID)
	return shortID, nil
}

// NewUserID generates a new prefixed user ID.
func NewUserID() (string, error) {
	return newPrefixedID(PrefixUser)
}

// NewConsentID generates a new prefixed consent record ID.
func NewConsentID() (string, error) {
	return newPrefixedID(PrefixConsent)
}

// NewTriageSessionID generates a new prefixed triage session ID.
func NewTriageSessionID() (string, error) {
	return newPrefixedID(PrefixTriage)
}

// NewTeleRequestID generates a new prefixed teleconsultation request ID.
func NewTeleRequestID() (string, error) {
	return newPrefixedID(PrefixTeleRequest)
}

// NewPrescriptionID generates a new prefixed prescription ID.
func NewPrescriptionID() (string, error) {
	return newPrefixedID(PrefixPrescription)
}

// NewComplaintID generates a new prefixed complaint ID.
func NewComplaintID() (string, error) {
	return newPrefixedID(PrefixComplaint)
}

// NewEvidenceID generates a new prefixed evidence ID.
func NewEvidenceID() (string, error) {
	return newPrefixedID(PrefixEvidence)
}

// NewAnchorID generates a new prefixed chain anchor ID.
func NewAnchorID() (string, error) {
	return newPrefixedID(PrefixAnchor)
}

// NewAnalyticsEventID generates a new prefixed analytics event ID.
func NewAnalyticsEventID() (string, error) {
	return newPrefixedID(PrefixAnalytics)
}

// NewMessageID generates a new prefixed outbound message ID.
func NewMessageID() (string, error) {
	return newPrefixedID(PrefixMessage)
}

// NewNeuroscreenResultID generates a new prefixed screening result ID.
func NewNeuroscreenResultID() (string, error) {
	return newPrefixedID(PrefixNeuroscreen)
}

// NewVaccinationRecordID generates a new prefixed vaccination record ID.
func NewVaccinationRecordID() (string, error) {
	return newPrefixedID(PrefixVaccination)
}

// NewTherapyModuleID generates a new prefixed therapy module ID.
func NewTherapyModuleID() (string, error) {
	return newPrefixedID(PrefixTherapyMod)
}

// NewTherapyPackID generates a new prefixed therapy pack ID.
func NewTherapyPackID() (string, error) {
	return newPrefixedID(PrefixTherapyPack)
}

func newPrefixedID(prefix string) (string, error) {
	shortID, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return FormatWithPrefix(prefix, shortID), nil
}
