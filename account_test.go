package catapult_test

import (
	"context"
	"testing"

	"github.com/nyaruka/catapult"
	"github.com/nyaruka/gocommon/httpx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/account": {
			httpx.NewMockResponse(200, nil, []byte(`{"balance": "538.37", "accountType": "pre-pay"}`)),
		},
	})

	account, err := client.Account.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("538.37")))
	assert.Equal(t, "pre-pay", account.AccountType)
}

func TestAccountTransactions(t *testing.T) {
	client := newTestClient(t, map[string][]*httpx.MockResponse{
		baseURL + "/users/u-123/account/transactions?maxItems=2": {
			httpx.NewMockResponse(200, nil, []byte(`[
				{"id": "t-1", "time": "2016-03-15T12:00:00Z", "amount": "0.0075", "type": "charge", "units": "1", "productType": "sms-out", "number": "+15551234567"},
				{"id": "t-2", "time": "2016-03-15T12:05:00Z", "amount": "0.0200", "type": "charge", "units": "2", "productType": "call-out", "number": "+15551234567"}
			]`)),
		},
	})

	txns, err := client.Account.Transactions(&catapult.TransactionListParams{MaxItems: 2}).All(context.Background())
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "t-1", txns[0].ID)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("0.0075")))
	assert.Equal(t, "sms-out", txns[0].ProductType)
}
