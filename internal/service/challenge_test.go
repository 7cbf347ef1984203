package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/blackjack-server/internal/mocks"
	"github.com/dtroode/blackjack-server/internal/model"
	"github.com/dtroode/blackjack-server/internal/testutil"
)

func TestChallengeService_Issue(t *testing.T) {
	store := mocks.NewChallengeStore(t)
	svc := NewChallengeService(store, 2*time.Minute, testutil.MakeNoopLogger())
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	var nonce string
	store.On("Put", mock.Anything, mock.AnythingOfType("string"), testWalletLower, 2*time.Minute).
		Run(func(args mock.Arguments) { nonce = args.String(1) }).
		Return(nil).Once()

	ch, err := svc.Issue(context.Background(), testWallet)
	require.NoError(t, err)

	assert.Equal(t, nonce, ch.Nonce)
	assert.Equal(t, testWalletLower, ch.Address)
	assert.Equal(t, issued.Add(2*time.Minute), ch.ExpiresAt)
	assert.Equal(t, "Sign in to Blackjack\n"+
		"Address: "+testWalletLower+"\n"+
		"Nonce: "+nonce+"\n"+
		"Issued At: 2024-03-01T12:00:00Z", ch.Message)
}

func TestChallengeService_Issue_InvalidAddress(t *testing.T) {
	store := mocks.NewChallengeStore(t)
	svc := NewChallengeService(store, 0, testutil.MakeNoopLogger())

	_, err := svc.Issue(context.Background(), "0x1234")

	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, store.Calls)
}

func TestChallengeService_Consume(t *testing.T) {
	message := FormatChallengeMessage(testWalletLower, "n-1", time.Now())

	tests := []struct {
		name      string
		message   string
		address   string
		stored    string
		storeErr  error
		callStore bool
		wantKind  model.AuthErrorKind
		wantErr   error
	}{
		{name: "valid", message: message, address: testWalletLower, stored: testWalletLower, callStore: true},
		{name: "not a challenge", message: "hello world", address: testWalletLower, wantKind: model.AuthChallengeInvalid},
		{name: "other address in message", message: message, address: "0x0000000000000000000000000000000000000001", wantKind: model.AuthChallengeInvalid},
		{name: "unknown or used nonce", message: message, address: testWalletLower, storeErr: model.ErrNotFound, callStore: true, wantKind: model.AuthChallengeInvalid},
		{name: "issued for another address", message: message, address: testWalletLower, stored: "0x0000000000000000000000000000000000000002", callStore: true, wantKind: model.AuthChallengeInvalid},
		{name: "store down", message: message, address: testWalletLower, storeErr: model.ErrStoreUnavailable, callStore: true, wantErr: model.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewChallengeStore(t)
			svc := NewChallengeService(store, time.Minute, testutil.MakeNoopLogger())
			if tt.callStore {
				store.On("Consume", mock.Anything, "n-1").Return(tt.stored, tt.storeErr).Once()
			}

			err := svc.Consume(context.Background(), tt.message, tt.address)

			switch {
			case tt.wantKind != "":
				var authErr *model.AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantKind, authErr.Kind)
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestParseChallengeMessage(t *testing.T) {
	addr, nonce, ok := ParseChallengeMessage("Sign in to Blackjack\r\nAddress: 0xabc\r\nNonce: xyz\r\nIssued At: 2024-01-01T00:00:00Z")
	require.True(t, ok)
	assert.Equal(t, "0xabc", addr)
	assert.Equal(t, "xyz", nonce)

	_, _, ok = ParseChallengeMessage("Sign in to Blackjack\nAddress: 0xabc")
	assert.False(t, ok)

	_, _, ok = ParseChallengeMessage("Welcome\nAddress: 0xabc\nNonce: xyz")
	assert.False(t, ok)
}
