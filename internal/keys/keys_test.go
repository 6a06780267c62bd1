package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndMultibaseRoundTrip(t *testing.T) {
	kp, err := Generate()
	require.NoError(t, err)

	mb, err := kp.Multibase()
	require.NoError(t, err)

	pub, err := PublicKeyFromMultibase(mb)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey, pub)
}

func TestFromSeedDeterministic(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}

	kp1, err := FromSeed(seed)
	require.NoError(t, err)
	kp2, err := FromSeed(seed)
	require.NoError(t, err)

	assert.Equal(t, kp1.PublicKey, kp2.PublicKey)
	assert.Equal(t, kp1.PrivateKey, kp2.PrivateKey)
}

func TestJWKRoundTrip(t *testing.T) {
	kp, err := Generate()
	require.NoError(t, err)

	full := kp.JWK()
	restored, err := KeyPairFromJWK(full)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey, restored.PublicKey)
	assert.Equal(t, kp.PrivateKey, restored.PrivateKey)

	pubOnly := kp.PublicJWK()
	assert.Empty(t, pubOnly.D)
	pub, err := PublicKeyFromJWK(pubOnly)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey, pub)
}

func TestPublicKeyFromJWKRejectsWrongCurve(t *testing.T) {
	_, err := PublicKeyFromJWK(JWK{Kty: "EC", Crv: "P-256", X: "abc"})
	assert.Error(t, err)
}
