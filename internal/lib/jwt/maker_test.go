package jwt

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_1234567890"

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestMaker_IssueAndParse_ValidCases(t *testing.T) {
	issuedAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	maker := NewMakerAt(testSecret, 24*time.Hour, fixedClock(issuedAt))

	tests := []struct {
		name    string
		userUID string
	}{
		{
			name:    "regular uid",
			userUID: "550e8400-e29b-41d4-a716-446655440000",
		},
		{
			name:    "random uid",
			userUID: uuid.New().String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.Issue(tt.userUID)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			gotUID, err := maker.Parse(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userUID, gotUID.String())

			claims := &jwtlib.RegisteredClaims{}
			_, err = jwtlib.ParseWithClaims(token, claims, func(_ *jwtlib.Token) (any, error) {
				return []byte(testSecret), nil
			}, jwtlib.WithTimeFunc(fixedClock(issuedAt)))
			require.NoError(t, err)
			assert.Equal(t, issuedAt.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
		})
	}
}

func TestMaker_Issue_DeterministicWithPinnedClock(t *testing.T) {
	issuedAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	maker := NewMakerAt(testSecret, 24*time.Hour, fixedClock(issuedAt))
	userUID := uuid.New().String()

	first, err := maker.Issue(userUID)
	require.NoError(t, err)
	second, err := maker.Issue(userUID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMaker_Parse_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	userUID := uuid.New().String()

	token, err := NewMakerAt(testSecret, 24*time.Hour, fixedClock(issuedAt)).Issue(userUID)
	require.NoError(t, err)

	tests := []struct {
		name     string
		verifyAt time.Time
		wantErr  error
	}{
		{
			name:     "just before expiry",
			verifyAt: issuedAt.Add(24*time.Hour - time.Second),
			wantErr:  nil,
		},
		{
			name:     "exactly at expiry",
			verifyAt: issuedAt.Add(24 * time.Hour),
			wantErr:  ErrExpired,
		},
		{
			name:     "long after expiry",
			verifyAt: issuedAt.Add(48 * time.Hour),
			wantErr:  ErrExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := NewMakerAt(testSecret, 24*time.Hour, fixedClock(tt.verifyAt))
			gotUID, err := verifier.Parse(token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, uuid.Nil, gotUID)
			} else {
				require.NoError(t, err)
				assert.Equal(t, userUID, gotUID.String())
			}
		})
	}
}

func TestMaker_Parse_InvalidTokens(t *testing.T) {
	issuedAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	maker := NewMakerAt(testSecret, 24*time.Hour, fixedClock(issuedAt))

	validToken, err := maker.Issue(uuid.New().String())
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "empty token",
			token:   "",
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "malformed token",
			token:   "invalid.token.here",
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "tampered signature byte",
			token:   tamperSignature(t, validToken),
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "wrong secret key",
			token:   issueWith(t, "wrong_secret_key", uuid.New().String(), issuedAt),
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "subject is not a uuid",
			token:   issueWith(t, testSecret, "not-a-uuid", issuedAt),
			wantErr: ErrMalformedSubject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUID, err := maker.Parse(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, uuid.Nil, gotUID)
		})
	}
}

func TestMaker_Parse_TamperedButExpiredStillRejected(t *testing.T) {
	issuedAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	token, err := NewMakerAt(testSecret, 24*time.Hour, fixedClock(issuedAt)).Issue(uuid.New().String())
	require.NoError(t, err)

	verifier := NewMakerAt(testSecret, 24*time.Hour, fixedClock(issuedAt.Add(48*time.Hour)))
	_, err = verifier.Parse(tamperSignature(t, token))
	assert.Error(t, err)
}

func tamperSignature(t *testing.T, token string) string {
	t.Helper()
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	return parts[0] + "." + parts[1] + "." + string(sig)
}

func issueWith(t *testing.T, secret, subject string, at time.Time) string {
	t.Helper()
	token, err := NewMakerAt(secret, 24*time.Hour, fixedClock(at)).Issue(subject)
	require.NoError(t, err)
	return token
}
