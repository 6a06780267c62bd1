// Package credence provides the public API surface for the DID toolkit:
// did:key, did:web and did:webvh document resolution, document
// construction, and the did:webvh verifiable-history log engine.
// It re-exports types and functions from internal packages for use by
// external applications.
package credence

import (
	"context"

	"github.com/ParichayaHQ/credence/internal/capability"
	"github.com/ParichayaHQ/credence/internal/did"
	"github.com/ParichayaHQ/credence/internal/didcache"
	"github.com/ParichayaHQ/credence/internal/didweb"
	"github.com/ParichayaHQ/credence/internal/keys"
	"github.com/ParichayaHQ/credence/internal/webvh"
	"go.uber.org/zap"
)

// DID document types

type (
	DIDDocument              = did.DIDDocument
	VerificationMethod       = did.VerificationMethod
	Service                  = did.Service
	JWK                      = did.JWK
	DIDResolutionResult      = did.DIDResolutionResult
	DIDResolutionMetadata    = did.DIDResolutionMetadata
	DIDDocumentMetadata      = did.DIDDocumentMetadata
	DocumentBuilder          = did.DocumentBuilder
	VerificationRelationship = did.VerificationRelationship
)

// Verification relationship constants.
const (
	Authentication       = did.Authentication
	AssertionMethod      = did.AssertionMethod
	KeyAgreement         = did.KeyAgreement
	CapabilityInvocation = did.CapabilityInvocation
	CapabilityDelegation = did.CapabilityDelegation
)

// DID error codes.
const (
	ErrorInvalidDID                 = did.ErrorInvalidDID
	ErrorMethodNotSupported         = did.ErrorMethodNotSupported
	ErrorRepresentationNotSupported = did.ErrorRepresentationNotSupported
	ErrorNotFound                   = did.ErrorNotFound
	ErrorProofVerification          = did.ErrorProofVerification
	ErrorPreRotationMismatch        = did.ErrorPreRotationMismatch
	ErrorChainBroken                = did.ErrorChainBroken
	ErrorScidMismatch               = did.ErrorScidMismatch
	ErrorWitnessThreshold           = did.ErrorWitnessThreshold
	ErrorPortabilityViolation       = did.ErrorPortabilityViolation
)

// DIDError is the error type that carries one of the codes above. The
// webvh log engine reports chain and proof failures as *VerificationError
// instead, which carries the same codes plus the offending versionId.
type DIDError = did.DIDError

// Key and capability types

type (
	KeyPair   = keys.KeyPair
	Signer    = capability.Signer
	Resolver  = capability.Resolver
	MemSigner = capability.MemSigner
)

// webvh log engine types

type (
	LogEntry            = webvh.LogEntry
	Parameters          = webvh.Parameters
	Witness             = webvh.Witness
	WitnessWeight       = webvh.WitnessWeight
	WitnessProof        = webvh.WitnessProof
	Proof               = webvh.Proof
	ResolutionMetadata  = webvh.ResolutionMetadata
	ResolutionResult    = webvh.ResolutionResult
	ResolveOptions      = webvh.ResolveOptions
	VerificationError   = webvh.VerificationError
	CreateBuilder       = webvh.CreateBuilder
	UpdateBuilder       = webvh.UpdateBuilder
	DeactivateBuilder   = webvh.DeactivateBuilder
)

// SCIDPlaceholder is the literal token substituted by the SCID
// derivation/substitution steps of the webvh log engine.
const SCIDPlaceholder = webvh.SCIDPlaceholder

// ============================================================================
// Key functions
// ============================================================================

// GenerateKeyPair creates a new random Ed25519 key pair.
func GenerateKeyPair() (*KeyPair, error) {
	return keys.Generate()
}

// NewMemSigner wraps kp as an in-process Signer reporting vm as its
// verificationMethod.
func NewMemSigner(kp *KeyPair, vm string) *MemSigner {
	return capability.NewMemSigner(kp, vm)
}

// ============================================================================
// DID document functions
// ============================================================================

// ParseDID parses a DID string into its method/identifier/path/query/
// fragment components.
func ParseDID(didString string) (*did.DID, error) {
	return did.ParseDID(didString)
}

// NewDocumentBuilder starts a fluent builder for the document identified
// by didString.
func NewDocumentBuilder(didString string) *DocumentBuilder {
	return did.NewDocumentBuilder(didString)
}

// ============================================================================
// did:key functions
// ============================================================================

// ResolveDIDKey resolves a did:key DID string to its DID document.
func ResolveDIDKey(ctx context.Context, didString string) (*DIDDocument, error) {
	resolver := did.NewKeyMethodResolver(did.NewDefaultKeyManager())
	result, err := resolver.Resolve(ctx, didString, nil)
	if err != nil {
		return nil, err
	}
	if result.DIDResolutionMetadata.Error != "" {
		return nil, did.NewDIDError(result.DIDResolutionMetadata.Error, result.DIDResolutionMetadata.ErrorMessage)
	}
	return result.DIDDocument, nil
}

// ============================================================================
// did:web / did:webvh URL resolution functions
// ============================================================================

// WebURL returns the HTTPS URL a did:web resolver fetches for didString.
func WebURL(didString string) (string, error) {
	return didweb.WebURL(didString)
}

// WebVHURL returns the HTTPS URL a did:webvh resolver fetches the log
// from for didString.
func WebVHURL(didString string) (string, error) {
	return didweb.WebVHURL(didString)
}

// DefaultDID derives a did:webvh DID with a {SCID} placeholder from a
// domain and path, the same way a did:web site is converted for
// onboarding onto did:webvh.
func DefaultDID(domainAndPath string) (string, error) {
	return didweb.DefaultDID(domainAndPath)
}

// ============================================================================
// webvh log engine functions
// ============================================================================

// NewCreateBuilder starts assembling the genesis entry of a new
// did:webvh log.
func NewCreateBuilder(updateKeys []string, doc *DIDDocument) *CreateBuilder {
	return webvh.NewCreateBuilder(updateKeys, doc)
}

// NewUpdateBuilder starts assembling the next entry appended to log.
func NewUpdateBuilder(log []LogEntry, doc *DIDDocument) *UpdateBuilder {
	return webvh.NewUpdateBuilder(log, doc)
}

// NewDeactivateBuilder starts assembling the terminal entry or entries
// appended to log.
func NewDeactivateBuilder(log []LogEntry) *DeactivateBuilder {
	return webvh.NewDeactivateBuilder(log)
}

// Resolve replays log, verifying every invariant, and returns the
// effective document and metadata at the requested target.
func Resolve(log []LogEntry, opts ResolveOptions) (*ResolutionResult, error) {
	return webvh.Resolve(log, opts)
}

// ============================================================================
// Resolution cache functions
// ============================================================================

// NewInMemoryCache creates an LRU, TTL-bounded resolution cache holding
// at most maxSize entries.
func NewInMemoryCache(maxSize int) *didcache.InMemoryCache {
	return didcache.NewInMemoryCache(maxSize)
}

// NewFilesystemDocumentStore opens a durable, filesystem-backed
// resolution cache rooted at basePath.
func NewFilesystemDocumentStore(basePath string) (*didcache.FilesystemDocumentStore, error) {
	return didcache.NewFilesystemDocumentStore(basePath)
}

// NewCacheManager fronts disk with an in-memory cache tier. disk may be
// nil to run purely in-memory.
func NewCacheManager(memory *didcache.InMemoryCache, disk *didcache.FilesystemDocumentStore) *didcache.CacheManager {
	return didcache.NewCacheManager(memory, disk)
}

// CacheManager is the public alias of the two-tier resolution cache.
type CacheManager = didcache.CacheManager

// ============================================================================
// Logging
// ============================================================================

// SetLogger attaches a structured logger to the webvh log engine and the
// did:web/did:webvh HTTPS resolver, which report at Debug around signer
// and resolver suspension points and at Warn on chain-verification
// failures. Passing nil restores the no-op default.
func SetLogger(l *zap.Logger) {
	webvh.SetLogger(l)
	didweb.SetLogger(l)
}
