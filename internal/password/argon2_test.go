package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHasher() *Hasher {
	return NewHasher(KDFParams{Time: 1, MemKiB: 1024, Par: 1})
}

func TestHasher_HashAndVerify(t *testing.T) {
	h := testHasher()

	hash, salt, err := h.Hash("p")
	require.NoError(t, err)
	assert.Len(t, hash, keyLen)
	assert.Len(t, salt, saltLen)

	assert.True(t, h.Verify("p", hash, salt))
	assert.False(t, h.Verify("q", hash, salt))
}

func TestHasher_SaltIsRandom(t *testing.T) {
	h := testHasher()

	hash1, salt1, err := h.Hash("secret")
	require.NoError(t, err)
	hash2, salt2, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestHasher_EmptyPassword(t *testing.T) {
	h := testHasher()

	_, _, err := h.Hash("")
	require.Error(t, err)
	assert.False(t, h.Verify("", []byte("x"), []byte("y")))
}

func TestHasher_VerifyRejectsMissingMaterial(t *testing.T) {
	h := testHasher()
	assert.False(t, h.Verify("p", nil, []byte("salt")))
	assert.False(t, h.Verify("p", []byte("hash"), nil))
}

func TestNewKDFParams_Defaults(t *testing.T) {
	p := NewKDFParams(0, 0, 0)
	assert.Equal(t, KDFParams{Time: 1, MemKiB: 64 * 1024, Par: 4}, p)

	p = NewKDFParams(3, 2048, 2)
	assert.Equal(t, KDFParams{Time: 3, MemKiB: 2048, Par: 2}, p)
}
