package rest

import (
	"context"

	"github.com/tradingiq/pacifica-client/types"
)

type CreateSubaccountResponse struct {
	SubaccountID int64 `json:"subaccount_id"`
}

func (c *Client) ListSubaccounts(ctx context.Context) ([]types.Subaccount, error) {
	var subaccounts []types.Subaccount
	if err := c.get(ctx, "/subaccounts", nil, "", &subaccounts); err != nil {
		return nil, err
	}
	return subaccounts, nil
}

func (c *Client) CreateSubaccount(ctx context.Context, req types.CreateSubaccountRequest) (int64, error) {
	var resp CreateSubaccountResponse
	if err := c.post(ctx, "/subaccounts/create", types.OpCreateSubaccount, req, &resp); err != nil {
		return 0, err
	}
	return resp.SubaccountID, nil
}

// TransferSubaccountFunds moves funds to or from a subaccount.
func (c *Client) TransferSubaccountFunds(ctx context.Context, req types.SubaccountTransferRequest) error {
	return c.post(ctx, "/subaccounts/transfer", types.OpSubaccountTransfer, req, nil)
}
