package shopify

import (
	"context"
	"fmt"
)

const (
	productPageSize = 250
	// maxProductPages bounds catalog pagination against a misbehaving cursor.
	maxProductPages = 40
)

type connection[T any] struct {
	Nodes    []T `json:"nodes"`
	PageInfo struct {
		HasNextPage bool   `json:"hasNextPage"`
		EndCursor   string `json:"endCursor"`
	} `json:"pageInfo"`
}

// productNode mirrors the GraphQL shape before connections are flattened.
type productNode struct {
	Product
	Images   connection[Image]   `json:"images"`
	Variants connection[Variant] `json:"variants"`
}

func (n productNode) flatten() Product {
	p := n.Product
	p.Images = n.Images.Nodes
	p.Variants = n.Variants.Nodes
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

func flattenProducts(nodes []productNode) []Product {
	out := make([]Product, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.flatten())
	}
	return out
}

// Products fetches the whole catalog, following the cursor until exhausted.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var (
		all   []Product
		after interface{}
	)
	for page := 0; page < maxProductPages; page++ {
		var data struct {
			Products connection[productNode] `json:"products"`
		}
		vars := map[string]interface{}{"first": productPageSize, "after": after}
		if err := c.do(ctx, productsQuery, vars, &data); err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		all = append(all, flattenProducts(data.Products.Nodes)...)
		if !data.Products.PageInfo.HasNextPage || data.Products.PageInfo.EndCursor == "" {
			return all, nil
		}
		after = data.Products.PageInfo.EndCursor
	}
	return all, nil
}

// Product fetches one product by handle.
func (c *Client) Product(ctx context.Context, handle string) (*Product, error) {
	var data struct {
		Product *productNode `json:"product"`
	}
	if err := c.do(ctx, productQuery, map[string]interface{}{"handle": handle}, &data); err != nil {
		return nil, fmt.Errorf("get product %q: %w", handle, err)
	}
	if data.Product == nil {
		return nil, ErrNotFound
	}
	p := data.Product.flatten()
	return &p, nil
}

// Collections lists collections without their products.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	var data struct {
		Collections connection[Collection] `json:"collections"`
	}
	if err := c.do(ctx, collectionsQuery, map[string]interface{}{"first": 100}, &data); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return data.Collections.Nodes, nil
}

// Collection fetches a collection and up to 100 of its products.
func (c *Client) Collection(ctx context.Context, handle string) (*Collection, error) {
	var data struct {
		Collection *struct {
			Collection
			Products connection[productNode] `json:"products"`
		} `json:"collection"`
	}
	vars := map[string]interface{}{"handle": handle, "first": 100}
	if err := c.do(ctx, collectionQuery, vars, &data); err != nil {
		return nil, fmt.Errorf("get collection %q: %w", handle, err)
	}
	if data.Collection == nil {
		return nil, ErrNotFound
	}
	col := data.Collection.Collection
	col.Products = flattenProducts(data.Collection.Products.Nodes)
	return &col, nil
}
