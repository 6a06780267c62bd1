package did

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentBuilderBasic(t *testing.T) {
	mb := "zExampleKey"
	vm := &VerificationMethod{
		ID:                 "did:webvh:{SCID}:example.com#key-1",
		Type:               string(KeyTypeEd25519),
		Controller:         "did:webvh:{SCID}:example.com",
		PublicKeyMultibase: &mb,
	}

	doc, err := NewDocumentBuilder("did:webvh:{SCID}:example.com").
		AddVerificationMethod(vm, Authentication, AssertionMethod).
		AddService(&Service{
			ID:              "did:webvh:{SCID}:example.com#whois",
			Type:            "LinkedVerifiablePresentation",
			ServiceEndpoint: "https://example.com/.well-known/whois",
		}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "did:webvh:{SCID}:example.com", doc.ID)
	assert.Len(t, doc.VerificationMethod, 1)
	assert.Contains(t, RelationReferenceIDs(doc.Authentication), vm.ID)
	assert.Contains(t, RelationReferenceIDs(doc.AssertionMethod), vm.ID)
	assert.Len(t, doc.Service, 1)
}

func TestSubstitutePlaceholder(t *testing.T) {
	mb := "zExampleKey"
	doc := &DIDDocument{
		Context: []string{"https://www.w3.org/ns/did/v1"},
		ID:      "did:webvh:{SCID}:example.com",
		VerificationMethod: []VerificationMethod{{
			ID:                 "did:webvh:{SCID}:example.com#key-1",
			Controller:         "did:webvh:{SCID}:example.com",
			Type:               string(KeyTypeEd25519),
			PublicKeyMultibase: &mb,
		}},
		Service: []Service{{
			ID:              "did:webvh:{SCID}:example.com#whois",
			Type:            "LinkedVerifiablePresentation",
			ServiceEndpoint: "https://example.com/.well-known/whois",
		}},
		Authentication: []interface{}{"did:webvh:{SCID}:example.com#key-1"},
	}

	substituted := SubstitutePlaceholder(doc, "{SCID}", "Qm123")

	assert.Equal(t, "did:webvh:Qm123:example.com", substituted.ID)
	assert.Equal(t, "did:webvh:Qm123:example.com#key-1", substituted.VerificationMethod[0].ID)
	assert.Equal(t, "did:webvh:Qm123:example.com#whois", substituted.Service[0].ID)
	assert.Equal(t, []interface{}{"did:webvh:Qm123:example.com#key-1"}, substituted.Authentication)

	// original untouched
	assert.Equal(t, "did:webvh:{SCID}:example.com", doc.ID)
}

func TestRelationReferenceIDs(t *testing.T) {
	refs := []interface{}{
		"did:example:123#key-1",
		map[string]interface{}{"id": "did:example:123#key-2"},
		VerificationMethod{ID: "did:example:123#key-3"},
	}
	ids := RelationReferenceIDs(refs)
	assert.Equal(t, []string{"did:example:123#key-1", "did:example:123#key-2", "did:example:123#key-3"}, ids)
}
