package upstream

import (
	"context"
	"net/http"
	"net/url"

	"vcarpool/models"
)

func (c *Client) SwapRequests(ctx context.Context, token, status string) ([]models.SwapRequest, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": []string{status}}
	}
	var out []models.SwapRequest
	req := request{op: "swaps.list", method: http.MethodGet, path: "/swap-requests", token: token, query: query}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSwapRequest(ctx context.Context, token string, in models.SwapRequestInput) (*models.SwapRequest, error) {
	var out models.SwapRequest
	req := request{op: "swaps.create", method: http.MethodPost, path: "/swap-requests", token: token, body: in}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) decideSwap(ctx context.Context, token, id, decision string) (*models.SwapRequest, error) {
	var out models.SwapRequest
	req := request{
		op:     "swaps." + decision,
		method: http.MethodPut,
		path:   "/swap-requests/" + url.PathEscape(id) + "/" + decision,
		token:  token,
	}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AcceptSwapRequest(ctx context.Context, token, id string) (*models.SwapRequest, error) {
	return c.decideSwap(ctx, token, id, "accept")
}

func (c *Client) RejectSwapRequest(ctx context.Context, token, id string) (*models.SwapRequest, error) {
	return c.decideSwap(ctx, token, id, "reject")
}
