package didweb

import (
	"context"
	"fmt"
	"strings"

	"github.com/ParichayaHQ/credence/internal/capability"
	"github.com/ParichayaHQ/credence/internal/did"
	"go.uber.org/zap"
)

// logger is the structured logger used around resolver suspension
// points (outbound HTTPS fetches, which may block or fail). Wire in a
// real logger via SetLogger.
var logger = zap.NewNop()

// SetLogger attaches a structured logger. Passing nil restores the
// no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// ContentType values served and accepted for did:web/did:webvh resolution.
const (
	ContentTypeDIDLDJSON = "application/did+ld+json"
	ContentTypeJSONL     = "text/jsonl"
)

// DIDInfo identifies the DID string resolved, broken into its components
// for the resolution metadata block.
type DIDInfo struct {
	DIDString        string `json:"didString"`
	MethodSpecificID string `json:"methodSpecificId"`
	Method           string `json:"method"`
}

// Metadata mirrors the resolution-metadata shape the original
// implementation emits: a content type, an optional URL-transform
// pattern, and the parsed DID components.
type Metadata struct {
	ContentType string  `json:"contentType"`
	Pattern     string  `json:"pattern,omitempty"`
	DID         DIDInfo `json:"did"`
}

// Resolved is the full resolution result returned to callers, matching
// §6's resolution metadata shape.
type Resolved struct {
	Context             string                   `json:"context"`
	Metadata             Metadata                `json:"metadata"`
	Document             interface{}             `json:"document,omitempty"`
	DIDDocumentMetadata  *did.DIDDocumentMetadata `json:"didDocumentMetadata,omitempty"`
}

// FetchWebDocument resolves a did:web DID by transforming it to its
// HTTPS URL and invoking resolver. It parses the served did.json body as
// a DID document and returns it in a Resolved together with the
// resolution metadata.
func FetchWebDocument(ctx context.Context, didString string, resolver capability.Resolver) (*Resolved, error) {
	url, err := WebURL(didString)
	if err != nil {
		return nil, err
	}

	logger.Debug("resolver suspension point", zap.String("did", didString), zap.String("url", url))
	body, err := resolver.Resolve(ctx, url)
	if err != nil {
		logger.Warn("resolver suspension point failed", zap.String("did", didString), zap.String("url", url), zap.Error(err))
		return nil, did.NewDIDErrorWithCause(did.ErrorOther, "resolver failed", err)
	}

	var doc did.DIDDocument
	if err := unmarshalDocument(body, &doc); err != nil {
		return nil, did.NewDIDErrorWithCause(did.ErrorInvalidDocument, "invalid did.json body", err)
	}

	return &Resolved{
		Context: "https://w3id.org/did-resolution/v1",
		Metadata: Metadata{
			ContentType: ContentTypeDIDLDJSON,
			Pattern:     `^did:web:(?P<identifier>[A-Za-z0-9.\-:%]+)$`,
			DID:         didInfo(didString, "web"),
		},
		Document: &doc,
	}, nil
}

// FetchWebVHLog resolves the raw JSON Lines body served at a did:webvh
// DID's /did.jsonl location. The caller (internal/webvh) is responsible
// for parsing and verifying the log itself.
func FetchWebVHLog(ctx context.Context, didString string, resolver capability.Resolver) ([]byte, Metadata, error) {
	url, err := WebVHURL(didString)
	if err != nil {
		return nil, Metadata{}, err
	}

	logger.Debug("resolver suspension point", zap.String("did", didString), zap.String("url", url))
	body, err := resolver.Resolve(ctx, url)
	if err != nil {
		logger.Warn("resolver suspension point failed", zap.String("did", didString), zap.String("url", url), zap.Error(err))
		return nil, Metadata{}, did.NewDIDErrorWithCause(did.ErrorOther, "resolver failed", err)
	}

	return body, Metadata{
		ContentType: ContentTypeJSONL,
		Pattern:     `^did:webvh:(?P<identifier>[A-Za-z0-9.\-:%]+)$`,
		DID:         didInfo(didString, "webvh"),
	}, nil
}

func didInfo(didString, method string) DIDInfo {
	methodSpecificID := didString
	if len(didString) > len("did:")+len(method)+1 {
		methodSpecificID = didString[len("did:")+len(method)+1:]
	}
	return DIDInfo{
		DIDString:        didString,
		MethodSpecificID: methodSpecificID,
		Method:           method,
	}
}

// DefaultDID derives the placeholder (pre-SCID-substitution) did:webvh
// DID string for a given HTTPS domain-and-path, e.g.
// "https://credibil.io/issuers/example" becomes
// "did:webvh:{SCID}:credibil.io:issuers:example".
func DefaultDID(domainAndPath string) (string, error) {
	trimmed := strings.TrimPrefix(domainAndPath, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	if trimmed == "" {
		return "", fmt.Errorf("didweb: empty domain")
	}
	identifier := strings.ReplaceAll(strings.TrimSuffix(trimmed, "/"), "/", ":")
	return fmt.Sprintf("did:webvh:{SCID}:%s", identifier), nil
}

func unmarshalDocument(body []byte, doc *did.DIDDocument) error {
	return doc.UnmarshalJSON(body)
}
