package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// ListAccountsParams contains parameters for listing signers
type ListAccountsParams struct {
	Balances bool
}

// ListAccountsResult contains the signers of the selected network
type ListAccountsResult struct {
	Network  string
	Accounts []*models.AccountBalance
}

// ListAccounts prints the signers available on the selected network
type ListAccounts struct {
	connector *Connector
	accounts  AccountProvider
}

// NewListAccounts creates a new ListAccounts use case
func NewListAccounts(connector *Connector, accounts AccountProvider) *ListAccounts {
	return &ListAccounts{
		connector: connector,
		accounts:  accounts,
	}
}

// Run executes the use case. Balances require a connection; plain listing does not.
func (uc *ListAccounts) Run(ctx context.Context, params ListAccountsParams) (*ListAccountsResult, error) {
	result := &ListAccountsResult{}

	if !params.Balances {
		accounts, err := uc.accounts.Accounts(ctx)
		if err != nil {
			return nil, err
		}
		for _, account := range accounts {
			result.Accounts = append(result.Accounts, &models.AccountBalance{Account: *account})
		}
		if n := uc.connector.Network(); n != nil {
			result.Network = n.Name
		}
		return result, nil
	}

	session, err := uc.connector.Open(ctx, false)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	result.Network = session.Network.Name

	for _, account := range session.Accounts {
		balance, err := session.Client.Balance(ctx, account.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch balance of %s: %w", account.Address.Hex(), err)
		}
		result.Accounts = append(result.Accounts, &models.AccountBalance{Account: *account, Balance: balance})
	}

	return result, nil
}
