package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	codec := NewHS256("test-secret-key", 15*time.Minute)

	details, err := codec.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, details.Token)
	require.NotEmpty(t, details.TokenID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), details.ExpiresAt, 5*time.Second)

	claims, err := codec.Verify(details.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, details.TokenID, claims.ID)
}

func TestCodec_Issue_UniqueTokenIDs(t *testing.T) {
	codec := NewHS256("test-secret-key", 15*time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		details, err := codec.Issue("user-123")
		require.NoError(t, err)
		require.False(t, seen[details.TokenID], "token ID must be unique across issues")
		seen[details.TokenID] = true
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	// Отрицательный TTL: токен истек в момент выпуска
	codec := NewHS256("test-secret-key", -1*time.Minute)

	details, err := codec.Issue("user-123")
	require.NoError(t, err)

	_, err = codec.Verify(details.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	codec := NewHS256("test-secret-key", 15*time.Minute)
	other := NewHS256("another-secret", 15*time.Minute)

	details, err := codec.Issue("user-123")
	require.NoError(t, err)

	_, err = other.Verify(details.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Verify_Malformed(t *testing.T) {
	codec := NewHS256("test-secret-key", 15*time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c", "a.b"} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestNewRS256_InvalidKeyMaterial(t *testing.T) {
	_, err := NewRS256("not-base64!!", "not-base64!!", 15*time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSigning)

	// Валидный base64, но не PEM
	_, err = NewRS256("bm90IGEgcGVtCg==", "bm90IGEgcGVtCg==", 15*time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSigning)
}
