package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Search runs a book search.
func (c *Client) Search(ctx context.Context, params SearchParams) (*Result, error) {
	if params.Query == "" {
		return nil, wrapError("search", "", fmt.Errorf("%w: empty query", ErrBadRequest))
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		return nil, wrapError("search", params.Query, fmt.Errorf("%w: page %d beyond limit", ErrBadRequest, page))
	}

	size := params.Size
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	query := url.Values{}
	query.Set("query", params.Query)
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	if params.Target != "" {
		query.Set("target", string(params.Target))
	}

	body, err := c.doRequest(ctx, "/v3/search/book", query)
	if err != nil {
		return nil, wrapError("search", params.Query, err)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, wrapError("search", params.Query, fmt.Errorf("parse response: %w", err))
	}

	return &result, nil
}

// SearchISBN looks a book up by ISBN. Some ISBNs resolve to several
// editions; the first document wins.
func (c *Client) SearchISBN(ctx context.Context, isbn string) (*Document, error) {
	result, err := c.Search(ctx, SearchParams{Query: isbn, Target: TargetISBN})
	if err != nil {
		return nil, err
	}
	if len(result.Documents) == 0 {
		return nil, nil
	}
	if len(result.Documents) > 1 {
		c.logger.Warn("isbn resolved to multiple documents, taking first",
			"isbn", isbn,
			"count", len(result.Documents),
		)
	}
	return &result.Documents[0], nil
}
