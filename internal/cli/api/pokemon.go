package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"Pokedex/internal/cli/errs"
	"Pokedex/internal/model"
)

// Page is one page of the catalog list.
type Page struct {
	Items   []model.Item
	HasMore bool
}

// listEnvelope covers both {data: [...], next} and {data: {data: [...], next}}.
type listEnvelope struct {
	Data json.RawMessage `json:"data"`
	Next json.RawMessage `json:"next"`
}

// ListPage fetches limit items starting at offset. It always goes to the
// network.
func (c *Client) ListPage(ctx context.Context, offset, limit int) (Page, error) {
	path := fmt.Sprintf("/pokemon?offset=%d&limit=%d", offset, limit)
	var env listEnvelope
	if err := c.getJSON(ctx, path, &env); err != nil {
		return Page{}, err
	}
	items, next, err := decodeList(env)
	if err != nil {
		return Page{}, errors.Mark(errors.Wrapf(err, "decode GET %s", path), errs.ErrNetwork)
	}
	page := Page{Items: items}
	if next != nil {
		page.HasMore = !isNull(next)
	} else {
		// next не прислали вовсе: считаем, что страница неполная, значит последняя
		page.HasMore = len(items) == limit
	}
	return page, nil
}

func decodeList(env listEnvelope) ([]model.Item, json.RawMessage, error) {
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || isNull(data) {
		return nil, env.Next, nil
	}
	if data[0] == '[' {
		var items []model.Item
		err := json.Unmarshal(data, &items)
		return items, env.Next, err
	}
	var inner listEnvelope
	if err := json.Unmarshal(data, &inner); err != nil {
		return nil, nil, err
	}
	var items []model.Item
	if len(inner.Data) > 0 && !isNull(inner.Data) {
		if err := json.Unmarshal(inner.Data, &items); err != nil {
			return nil, nil, err
		}
	}
	next := env.Next
	if next == nil {
		next = inner.Next
	}
	return items, next, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// Search returns items whose name matches query. A blank query returns no
// items without a request.
func (c *Client) Search(ctx context.Context, query string) ([]model.Item, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}
	var resp struct {
		Data []model.Item `json:"data"`
	}
	if err := c.getJSON(ctx, "/pokemon/search?name="+url.QueryEscape(q), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DetailByName returns full details, cached by name.
func (c *Client) DetailByName(ctx context.Context, name string) (model.Item, error) {
	key := model.NormalizeName(name)
	if key == "" {
		return model.Item{}, errs.Validation("pokemon name is required", "")
	}
	if it, ok := c.cache.ByName(key); ok {
		c.logger.Debugw("detail cache hit", "name", key)
		return it, nil
	}
	var resp struct {
		Data model.Item `json:"data"`
	}
	if err := c.getJSON(ctx, "/pokemon/"+url.PathEscape(key), &resp); err != nil {
		return model.Item{}, err
	}
	if resp.Data.Name == "" {
		return model.Item{}, errors.Mark(errors.Newf("pokemon %q not found", key), errs.ErrNotFound)
	}
	c.cache.Put(resp.Data)
	return resp.Data, nil
}

// DetailByID returns full details, cached by id and by name.
func (c *Client) DetailByID(ctx context.Context, id int) (model.Item, error) {
	if it, ok := c.cache.ByID(id); ok {
		c.logger.Debugw("detail cache hit", "id", id)
		return it, nil
	}
	var it model.Item
	if err := c.getJSON(ctx, "/pokemon/"+strconv.Itoa(id), &it); err != nil {
		return model.Item{}, err
	}
	if it.Name == "" {
		return model.Item{}, errors.Mark(errors.Newf("pokemon #%d not found", id), errs.ErrNotFound)
	}
	if it.ID == 0 {
		it.ID = id
	}
	c.cache.Put(it)
	return it, nil
}

// Detail resolves key as a numeric id or a name.
func (c *Client) Detail(ctx context.Context, key string) (model.Item, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(key)); err == nil {
		return c.DetailByID(ctx, id)
	}
	return c.DetailByName(ctx, key)
}

// Cache exposes the detail cache.
func (c *Client) Cache() *DetailCache { return c.cache }
