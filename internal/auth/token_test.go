package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func fixedIssuer(secret string, ttl time.Duration, now time.Time) *Issuer {
	i := NewIssuer(secret, ttl)
	i.now = func() time.Time { return now }
	return i
}

func TestIssueAndVerify(t *testing.T) {
	iss := fixedIssuer("s3cret", 30*time.Minute, t0)

	token, err := iss.Issue("ada@example.com")
	require.NoError(t, err)

	sub, err := iss.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", sub)
	assert.Equal(t, "ada@example.com", Subject(token))
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	token, err := fixedIssuer("one", time.Hour, t0).Issue("ada@example.com")
	require.NoError(t, err)

	_, err = fixedIssuer("two", time.Hour, t0).Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyRejectsExpired(t *testing.T) {
	token, err := fixedIssuer("s3cret", time.Minute, t0).Issue("ada@example.com")
	require.NoError(t, err)

	_, err = fixedIssuer("s3cret", time.Minute, t0.Add(2*time.Minute)).Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestCheck(t *testing.T) {
	token, err := fixedIssuer("s3cret", 30*time.Minute, t0).Issue("ada@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{"fresh", token, t0.Add(time.Minute), nil},
		{"at expiry", token, t0.Add(30 * time.Minute), ErrTokenExpired},
		{"past expiry", token, t0.Add(time.Hour), ErrTokenExpired},
		{"garbage", "not-a-jwt", t0, ErrTokenMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.token, tt.now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
