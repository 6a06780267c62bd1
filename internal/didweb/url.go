// Package didweb implements the did:web and did:webvh DID-to-HTTPS URL
// transformation — the entry point to resolution for both methods.
package didweb

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ParichayaHQ/credence/internal/did"
)

var (
	webIdentifierRegex = regexp.MustCompile(`^[A-Za-z0-9.\-:%]+$`)
	webDIDRegex        = regexp.MustCompile(`^did:web:(?P<identifier>[A-Za-z0-9.\-:%]+)$`)
	webvhDIDRegex      = regexp.MustCompile(`^did:webvh:(?P<identifier>[A-Za-z0-9.\-:%]+)$`)
)

// WebURL transforms a did:web DID into the HTTPS URL serving its DID
// document, terminated by /did.json.
func WebURL(didString string) (string, error) {
	m := webDIDRegex.FindStringSubmatch(didString)
	if m == nil {
		return "", did.NewDIDError(did.ErrorInvalidDID, "DID is not a valid did:web")
	}
	identifier := m[1]
	if !webIdentifierRegex.MatchString(identifier) {
		return "", did.NewDIDError(did.ErrorInvalidDID, "did:web identifier contains invalid characters")
	}
	domain := transformIdentifier(identifier)
	return fmt.Sprintf("https://%s/did.json", domain), nil
}

// WebVHURL transforms a did:webvh DID into the HTTPS URL serving its
// append-only log, terminated by /did.jsonl. The SCID component is
// stripped from the path: it is bound cryptographically into every log
// entry instead of appearing in the resolution URL.
func WebVHURL(didString string) (string, error) {
	m := webvhDIDRegex.FindStringSubmatch(didString)
	if m == nil {
		return "", did.NewDIDError(did.ErrorInvalidDID, "DID is not a valid did:webvh")
	}
	scidAndIdentifier := m[1]
	if !webIdentifierRegex.MatchString(scidAndIdentifier) {
		return "", did.NewDIDError(did.ErrorInvalidDID, "did:webvh identifier contains invalid characters")
	}

	idx := strings.Index(scidAndIdentifier, ":")
	if idx < 0 {
		return "", did.NewDIDError(did.ErrorInvalidDID, "did:webvh is missing its SCID")
	}
	identifier := scidAndIdentifier[idx+1:]

	domain := transformIdentifier(identifier)
	return fmt.Sprintf("https://%s/did.jsonl", domain), nil
}

// transformIdentifier applies the shared did:web/did:webvh method-specific
// identifier to URL-path transformation: colons become slashes, a bare
// domain (no path) gets a /.well-known segment inserted, and a
// percent-encoded colon (denoting a port) is decoded back to ':'.
func transformIdentifier(identifier string) string {
	hadPath := strings.Contains(identifier, ":")
	domain := strings.ReplaceAll(identifier, ":", "/")
	if !hadPath {
		domain += "/.well-known"
	}
	domain = strings.ReplaceAll(domain, "%3A", ":")
	return domain
}
