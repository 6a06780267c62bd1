package multicodec

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeEd25519RoundTrip(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	encoded, err := EncodeEd25519(pub)
	require.NoError(t, err)
	assert.True(t, len(encoded) > 0)
	assert.Equal(t, byte('z'), encoded[0])

	decoded, err := DecodeEd25519(encoded)
	require.NoError(t, err)
	assert.Equal(t, pub, decoded)
}

func TestDecodeEd25519RejectsWrongCodec(t *testing.T) {
	_, err := DecodeEd25519("zQ3shokFTS3brHcDQrn82RUDfCZESWL1ZdCEJwekUDPQiYBme")
	assert.Error(t, err)
}

func TestDecodeEd25519RejectsWrongLength(t *testing.T) {
	short := Base58Encode([]byte{0xed, 0x01, 0x01, 0x02})
	_, err := DecodeEd25519("z" + short)
	assert.Error(t, err)
}

func TestBase58RoundTrip(t *testing.T) {
	data := []byte{0, 0, 1, 2, 3, 255}
	encoded := Base58Encode(data)
	decoded, err := Base58Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}
