package shopify

import (
	"context"
	"fmt"
)

type cartNode struct {
	Cart
	Lines connection[CartLine] `json:"lines"`
}

func (n *cartNode) flatten() *Cart {
	if n == nil {
		return nil
	}
	cart := n.Cart
	cart.Lines = n.Lines.Nodes
	if cart.Lines == nil {
		cart.Lines = []CartLine{}
	}
	return &cart
}

type cartPayload struct {
	Cart       *cartNode  `json:"cart"`
	UserErrors UserErrors `json:"userErrors"`
}

func (p cartPayload) result() (*Cart, error) {
	if len(p.UserErrors) > 0 {
		return nil, p.UserErrors
	}
	if p.Cart == nil {
		return nil, ErrNotFound
	}
	return p.Cart.flatten(), nil
}

// Cart fetches a cart by id. Expired or unknown carts return ErrNotFound.
func (c *Client) Cart(ctx context.Context, cartID string) (*Cart, error) {
	var data struct {
		Cart *cartNode `json:"cart"`
	}
	if err := c.do(ctx, cartQuery, map[string]interface{}{"cartId": cartID}, &data); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if data.Cart == nil {
		return nil, ErrNotFound
	}
	return data.Cart.flatten(), nil
}

// CreateCart opens a new cart, optionally with initial lines.
func (c *Client) CreateCart(ctx context.Context, lines []CartLineInput) (*Cart, error) {
	var data struct {
		CartCreate cartPayload `json:"cartCreate"`
	}
	vars := map[string]interface{}{"lines": lines}
	if err := c.do(ctx, cartCreateMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return data.CartCreate.result()
}

func (c *Client) AddCartLines(ctx context.Context, cartID string, lines []CartLineInput) (*Cart, error) {
	var data struct {
		CartLinesAdd cartPayload `json:"cartLinesAdd"`
	}
	vars := map[string]interface{}{"cartId": cartID, "lines": lines}
	if err := c.do(ctx, cartLinesAddMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("add cart lines: %w", err)
	}
	return data.CartLinesAdd.result()
}

func (c *Client) UpdateCartLines(ctx context.Context, cartID string, lines []CartLineUpdate) (*Cart, error) {
	var data struct {
		CartLinesUpdate cartPayload `json:"cartLinesUpdate"`
	}
	vars := map[string]interface{}{"cartId": cartID, "lines": lines}
	if err := c.do(ctx, cartLinesUpdateMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("update cart lines: %w", err)
	}
	return data.CartLinesUpdate.result()
}

func (c *Client) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error) {
	var data struct {
		CartLinesRemove cartPayload `json:"cartLinesRemove"`
	}
	vars := map[string]interface{}{"cartId": cartID, "lineIds": lineIDs}
	if err := c.do(ctx, cartLinesRemoveMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("remove cart lines: %w", err)
	}
	return data.CartLinesRemove.result()
}
