package catapult

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Account is the balance and type of the authenticated account
type Account struct {
	Balance     decimal.Decimal `json:"balance"`
	AccountType string          `json:"accountType,omitempty"`
}

// AccountTransaction is a single charge or credit against the account
type AccountTransaction struct {
	ID          string          `json:"id"`
	Time        *time.Time      `json:"time,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type,omitempty"`
	Units       string          `json:"units,omitempty"`
	ProductType string          `json:"productType,omitempty"`
	Number      string          `json:"number,omitempty"`
}

// TransactionListParams are the filters accepted when listing transactions
type TransactionListParams struct {
	MaxItems     int    `schema:"maxItems,omitempty"`
	FromDateTime string `schema:"fromDate,omitempty"`
	ToDateTime   string `schema:"toDate,omitempty"`
	Type         string `schema:"type,omitempty"`
	Size         int    `schema:"size,omitempty" validate:"omitempty,max=1000"`
}

// AccountService reads account-level state
type AccountService struct {
	client *Client
}

// Get fetches the current account balance and type
func (s *AccountService) Get(ctx context.Context) (*Account, error) {
	account := &Account{}
	if _, err := s.client.get(ctx, s.client.userPath("/account"), nil, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Transactions returns an iterator over the account's transactions
func (s *AccountService) Transactions(params *TransactionListParams) *Iter[*AccountTransaction] {
	query, err := encodeQuery(params)
	if err != nil {
		return &Iter[*AccountTransaction]{err: err}
	}
	return listIter[*AccountTransaction](s.client, s.client.userPath("/account/transactions"), query, nil)
}
