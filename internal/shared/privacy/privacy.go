// Package privacy holds the de-identification key policy shared by the
// analytics pipeline and the chain anchor client. Nothing carrying one of
// these keys may leave the system boundary.
package privacy

import (
	"fmt"
	"strings"
)

// disallowedKeys are field names that identify a person or a record. They are
// rejected wherever payloads cross into analytics or on-chain storage.
var disallowedKeys = map[string]bool{
	"user_id":      true,
	"username":     true,
	"phone":        true,
	"email":        true,
	"complaint_id": true,
	"full_name":    true,
	"name":         true,
	"address":      true,
	"gps":          true,
	"latitude":     true,
	"longitude":    true,
	"evidence":     true,
	"filename":     true,
	"url":          true,
	"comment":      true,
	"text":         true,
	"description":  true,
}

// identifyingFragments catch composed keys such as patient_name or
// contact_email that the exact-match list would miss.
var identifyingFragments = []string{"name", "email", "phone"}

// IsDisallowedKey reports whether a single key is banned.
func IsDisallowedKey(key string) bool {
	lowered := strings.ToLower(key)
	if disallowedKeys[lowered] {
		return true
	}
	for _, fragment := range identifyingFragments {
		if strings.Contains(lowered, fragment) {
			return true
		}
	}
	return false
}

// DisallowedKeys returns the exact-match ban list.
func DisallowedKeys() []string {
	keys := make([]string, 0, len(disallowedKeys))
	for k := range disallowedKeys {
		keys = append(keys, k)
	}
	return keys
}

// ValidatePayloadKeys walks the payload, including nested objects and
// arrays, and returns an error naming the first banned key found.
func ValidatePayloadKeys(payload map[string]any) error {
	return validateValue(payload)
}

func validateValue(v any) error {
	switch val := v.(type) {
	case map[string]any:
		for key, nested := range val {
			if IsDisallowedKey(key) {
				return fmt.Errorf("disallowed key in payload: %s", key)
			}
			if err := validateValue(nested); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range val {
			if err := validateValue(item); err != nil {
				return err
			}
		}
	}
	return nil
}
