package api

import (
	"context"

	"Pokedex/internal/model"
)

// Favorites lists the server-side favorite records.
func (c *Client) Favorites(ctx context.Context) ([]model.Favorite, error) {
	var resp struct {
		Data []model.Favorite `json:"data"`
	}
	if err := c.getJSON(ctx, "/favorite", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// AddFavorite creates a favorite record for it.
func (c *Client) AddFavorite(ctx context.Context, it model.Item) error {
	_, err := c.postJSON(ctx, "/favorite", it)
	return err
}

// ToggleFavorite flips the mark of the favorite record id.
func (c *Client) ToggleFavorite(ctx context.Context, id int) error {
	_, err := c.postJSON(ctx, "/favorite/update", map[string]int{"id": id})
	return err
}
