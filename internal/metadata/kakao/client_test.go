package kakao

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/jarcoal/httpmock"
)

const testBaseURL = "https://dapi.test.local"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c := New(Config{BaseURL: testBaseURL, RESTKey: "test-rest-key"}, logger)
	httpmock.ActivateNonDefault(c.http)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestSearch(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBaseURL+"/v3/search/book",
		func(req *http.Request) (*http.Response, error) {
			if got := req.Header.Get("Authorization"); got != "KakaoAK test-rest-key" {
				t.Errorf("unexpected auth header: %q", got)
			}
			q := req.URL.Query()
			if q.Get("query") != "데미안" || q.Get("target") != "title" {
				t.Errorf("unexpected query: %v", q)
			}
			return httpmock.NewStringResponse(200, `{
				"meta": {"total_count": 1, "pageable_count": 1, "is_end": true},
				"documents": [{
					"title": "데미안",
					"isbn": "8937460440 9788937460449",
					"datetime": "2009-01-20T00:00:00.000+09:00",
					"authors": ["헤르만 헤세"],
					"publisher": "민음사",
					"price": 8000,
					"thumbnail": "https://img.example.com/demian.jpg",
					"status": "정상판매"
				}]
			}`), nil
		})

	result, err := c.Search(context.Background(), SearchParams{Query: "데미안", Target: TargetTitle})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !result.Meta.IsEnd || result.Meta.TotalCount != 1 {
		t.Errorf("unexpected meta: %+v", result.Meta)
	}
	if len(result.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(result.Documents))
	}
	doc := result.Documents[0]
	if doc.Publisher != "민음사" || doc.Price != 8000 {
		t.Errorf("unexpected document: %+v", doc)
	}
	if doc.Datetime.Year() != 2009 {
		t.Errorf("datetime not parsed: %v", doc.Datetime)
	}
}

func TestSearchISBNTakesFirst(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBaseURL+"/v3/search/book",
		func(req *http.Request) (*http.Response, error) {
			// The lookup must not truncate the result set; several
			// editions have to come back for the policy to apply.
			if got := req.URL.Query().Get("size"); got == "1" {
				t.Errorf("lookup requested size 1, hiding extra editions")
			}
			return httpmock.NewStringResponse(200, `{
				"meta": {"total_count": 2, "pageable_count": 2, "is_end": true},
				"documents": [
					{"title": "First Edition", "isbn": "9788937460449"},
					{"title": "Second Edition", "isbn": "9788937460449"}
				]
			}`), nil
		})

	doc, err := c.SearchISBN(context.Background(), "9788937460449")
	if err != nil {
		t.Fatalf("SearchISBN: %v", err)
	}
	if doc == nil || doc.Title != "First Edition" {
		t.Errorf("expected first document, got %+v", doc)
	}
}

func TestSearchISBNNoMatch(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBaseURL+"/v3/search/book",
		httpmock.NewStringResponder(200, `{
			"meta": {"total_count": 0, "pageable_count": 0, "is_end": true},
			"documents": []
		}`))

	doc, err := c.SearchISBN(context.Background(), "0000000000000")
	if err != nil {
		t.Fatalf("SearchISBN: %v", err)
	}
	if doc != nil {
		t.Errorf("expected nil document, got %+v", doc)
	}
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", 401, ErrUnauthorized},
		{"rate limited", 429, ErrRateLimited},
		{"bad request", 400, ErrBadRequest},
		{"server error", 500, ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t)
			httpmock.RegisterResponder("GET", testBaseURL+"/v3/search/book",
				httpmock.NewStringResponder(tt.status, "{}"))

			_, err := c.Search(context.Background(), SearchParams{Query: "x"})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Search(context.Background(), SearchParams{})
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}

func TestSearchPageBeyondLimit(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Search(context.Background(), SearchParams{Query: "x", Page: 51})
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}
