package canon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeKeyOrdering(t *testing.T) {
	a := map[string]interface{}{"b": 1, "a": 2, "c": 3}
	b := map[string]interface{}{"c": 3, "a": 2, "b": 1}

	ca, err := Canonicalize(a)
	require.NoError(t, err)
	cb, err := Canonicalize(b)
	require.NoError(t, err)

	assert.Equal(t, ca, cb)
	assert.Equal(t, `{"a":2,"b":1,"c":3}`, string(ca))
}

func TestCanonicalizePreservesEmptyFields(t *testing.T) {
	t.Run("EmptyArrayKept", func(t *testing.T) {
		doc := map[string]interface{}{"alsoKnownAs": []interface{}{}, "id": "x"}
		out, err := Canonicalize(doc)
		require.NoError(t, err)
		assert.Contains(t, string(out), `"alsoKnownAs":[]`)
	})

	t.Run("EmptyStringKept", func(t *testing.T) {
		doc := map[string]interface{}{"note": "", "id": "x"}
		out, err := Canonicalize(doc)
		require.NoError(t, err)
		assert.Contains(t, string(out), `"note":""`)
	})
}

func TestCanonicalizeIdempotent(t *testing.T) {
	doc := map[string]interface{}{
		"id":      "did:webvh:abc:example.com",
		"context": []interface{}{"https://www.w3.org/ns/did/v1"},
		"nested":  map[string]interface{}{"z": 1, "a": 2},
	}

	eq, err := Equal(doc, doc)
	require.NoError(t, err)
	assert.True(t, eq)

	first, err := Canonicalize(doc)
	require.NoError(t, err)
	var roundTripped interface{}
	require.NoError(t, json.Unmarshal(first, &roundTripped))
	second, err := Canonicalize(roundTripped)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHashDeterministic(t *testing.T) {
	data := []byte(`{"id":"did:webvh:abc:example.com"}`)

	h1, err := Hash(data)
	require.NoError(t, err)
	h2, err := Hash(data)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.NotEmpty(t, h1)

	ok, err := VerifyHash(data, h1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyHash([]byte(`{"id":"different"}`), h1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashJSONMatchesCanonicalizeThenHash(t *testing.T) {
	doc := map[string]interface{}{"b": 1, "a": 2}

	viaHelper, err := HashJSON(doc)
	require.NoError(t, err)

	canonical, err := Canonicalize(doc)
	require.NoError(t, err)
	viaManual, err := Hash(canonical)
	require.NoError(t, err)

	assert.Equal(t, viaManual, viaHelper)
}

func TestCanonicalizeTooLarge(t *testing.T) {
	big := make([]interface{}, 0)
	padding := make([]byte, MaxDocumentSize)
	for i := range padding {
		padding[i] = 'a'
	}
	big = append(big, string(padding), string(padding), string(padding))

	_, err := Canonicalize(map[string]interface{}{"blob": big})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)
}
