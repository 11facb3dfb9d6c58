package seoji

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the yyyyMMdd layout the feed expects for date windows.
const DateLayout = "20060102"

// ListByDate fetches one page of records registered on the given date.
// Pages are 1-based.
//
// The feed serializes TOTAL_COUNT as a string; a value that does not
// parse as an integer makes the whole page unusable and is reported as
// ErrInvalidResponse. PAGE_NO is advisory: when absent or garbled the
// returned PageNo is 0 and callers fall back to counting pages
// themselves.
func (c *Client) ListByDate(ctx context.Context, date time.Time, page, pageSize int) (*Page, error) {
	if page < 1 {
		return nil, wrapError("listByDate", page, fmt.Errorf("%w: page must be >= 1", ErrBadRequest))
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	day := date.Format(DateLayout)
	query := url.Values{}
	query.Set("cert_key", c.certKey)
	query.Set("result_style", "json")
	query.Set("page_no", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	query.Set("start_publish_date", day)
	query.Set("end_publish_date", day)

	body, err := c.doRequest(ctx, query)
	if err != nil {
		return nil, wrapError("listByDate", page, err)
	}

	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapError("listByDate", page, fmt.Errorf("%w: parse body: %v", ErrInvalidResponse, err))
	}

	totalCount, err := strconv.Atoi(strings.TrimSpace(raw.TotalCount))
	if err != nil {
		return nil, wrapError("listByDate", page, fmt.Errorf("%w: TOTAL_COUNT %q", ErrInvalidResponse, raw.TotalCount))
	}

	// PAGE_NO is best-effort.
	pageNo, err := strconv.Atoi(strings.TrimSpace(raw.PageNo))
	if err != nil {
		pageNo = 0
	}

	docs := make([]Document, 0, len(raw.Docs))
	for _, d := range raw.Docs {
		docs = append(docs, Document{
			ISBN:           d.EAISBN,
			SetISBN:        d.SetISBN,
			Title:          d.Title,
			Author:         d.Author,
			Publisher:      d.Publisher,
			PrePrice:       d.PrePrice,
			PublishPredate: d.PublishPredate,
			ImageURL:       d.TitleURL,
		})
	}

	return &Page{
		TotalCount: totalCount,
		PageNo:     pageNo,
		Documents:  docs,
	}, nil
}
