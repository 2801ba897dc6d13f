package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"Pokedex/internal/model"
)

// Groups lists the groups stored on the server.
func (c *Client) Groups(ctx context.Context) ([]model.Group, error) {
	var resp struct {
		Data []model.Group `json:"data"`
	}
	if err := c.getJSON(ctx, "/group-pokemon", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateGroup creates a group in one call. The returned group is whatever the
// server echoed back; a body it cannot decode yields the zero Group.
func (c *Client) CreateGroup(ctx context.Context, req model.GroupRequest) (model.Group, error) {
	body, err := c.postJSON(ctx, "/group-pokemon", req)
	if err != nil {
		return model.Group{}, err
	}
	var resp struct {
		Data model.Group `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Debugw("create group: unexpected response body", "error", err)
		return model.Group{}, nil
	}
	return resp.Data, nil
}

// DeleteGroup removes group id.
func (c *Client) DeleteGroup(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/group-pokemon/"+strconv.Itoa(id), nil)
	return err
}
