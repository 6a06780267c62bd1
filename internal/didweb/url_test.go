package didweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebURLSimple(t *testing.T) {
	url, err := WebURL("did:web:domain.with-hyphens.computer")
	require.NoError(t, err)
	assert.Equal(t, "https://domain.with-hyphens.computer/.well-known/did.json", url)
}

func TestWebVHURLWithPath(t *testing.T) {
	url, err := WebVHURL("did:webvh:z6Mk3vz:domain.with-hyphens.computer:dids:issuer")
	require.NoError(t, err)
	assert.Equal(t, "https://domain.with-hyphens.computer/dids/issuer/did.jsonl", url)
}

func TestWebVHURLWithPort(t *testing.T) {
	url, err := WebVHURL("did:webvh:z6Mk3vz:domain.with-hyphens.computer%3A8080")
	require.NoError(t, err)
	assert.Equal(t, "https://domain.with-hyphens.computer:8080/.well-known/did.jsonl", url)
}

func TestWebVHURLDefault(t *testing.T) {
	url, err := WebVHURL("did:webvh:z6Mk3vz:domain.with-hyphens.computer")
	require.NoError(t, err)
	assert.Equal(t, "https://domain.with-hyphens.computer/.well-known/did.jsonl", url)
}

func TestWebVHURLMissingSCID(t *testing.T) {
	_, err := WebVHURL("did:webvh:domain.with-hyphens.computer")
	assert.Error(t, err)
}

func TestWebURLRejectsWrongMethod(t *testing.T) {
	_, err := WebURL("did:key:z6Mk3vz")
	assert.Error(t, err)
}

func TestDefaultDID(t *testing.T) {
	d, err := DefaultDID("https://credibil.io/issuers/example")
	require.NoError(t, err)
	assert.Equal(t, "did:webvh:{SCID}:credibil.io:issuers:example", d)
}
