// utils/validation.go
package utils

import (
	"encoding/base64"
	"strings"
)

// ValidateImagePayload checks that a payload is decodable base64 image data.
// A data-URL prefix is tolerated and stripped before checking.
func ValidateImagePayload(payload string) bool {
	if payload == "" {
		return false
	}

	if strings.HasPrefix(payload, "data:") {
		_, rest, ok := strings.Cut(payload, ",")
		if !ok {
			return false
		}
		payload = rest
	}

	_, err := base64.StdEncoding.DecodeString(payload)
	return err == nil
}
