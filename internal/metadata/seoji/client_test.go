package seoji

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
)

const testBaseURL = "https://feed.example.com/SearchApi.do"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c := New(Config{BaseURL: testBaseURL, CertKey: "test-key"}, logger)
	httpmock.ActivateNonDefault(c.http)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func feedDate() time.Time {
	return time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
}

func TestListByDate(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBaseURL,
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			if q.Get("cert_key") != "test-key" {
				t.Errorf("missing cert_key, got %q", q.Get("cert_key"))
			}
			if q.Get("start_publish_date") != "20260828" || q.Get("end_publish_date") != "20260828" {
				t.Errorf("unexpected date window: %v", q)
			}
			if q.Get("page_no") != "2" {
				t.Errorf("expected page_no=2, got %q", q.Get("page_no"))
			}
			return httpmock.NewStringResponse(200, `{
				"TOTAL_COUNT": "123",
				"PAGE_NO": "2",
				"docs": [
					{"EA_ISBN": "9788936434120 9788936434121", "TITLE": "채식주의자", "AUTHOR": "한강", "PUBLISHER": "창비", "PRE_PRICE": "15000", "PUBLISH_PREDATE": "20260828"}
				]
			}`), nil
		})

	page, err := c.ListByDate(context.Background(), feedDate(), 2, 100)
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if page.TotalCount != 123 || page.PageNo != 2 {
		t.Errorf("unexpected page meta: %+v", page)
	}
	if len(page.Documents) != 1 {
		t.Fatalf("expected 1 doc, got %d", len(page.Documents))
	}
	if page.Documents[0].ISBN != "9788936434120 9788936434121" {
		t.Errorf("unexpected isbn: %q", page.Documents[0].ISBN)
	}
}

func TestListByDateGarbledTotalCount(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBaseURL,
		httpmock.NewStringResponder(200, `{"TOTAL_COUNT": "not-a-number", "PAGE_NO": "1", "docs": []}`))

	_, err := c.ListByDate(context.Background(), feedDate(), 1, 100)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestListByDateGarbledPageNo(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder("GET", testBaseURL,
		httpmock.NewStringResponder(200, `{"TOTAL_COUNT": "5", "docs": []}`))

	page, err := c.ListByDate(context.Background(), feedDate(), 1, 100)
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if page.PageNo != 0 {
		t.Errorf("expected PageNo 0 for absent PAGE_NO, got %d", page.PageNo)
	}
}

func TestListByDateRetriesOnServerError(t *testing.T) {
	c := newTestClient(t)

	calls := 0
	httpmock.RegisterResponder("GET", testBaseURL,
		func(*http.Request) (*http.Response, error) {
			calls++
			if calls < 3 {
				return httpmock.NewStringResponse(500, "boom"), nil
			}
			return httpmock.NewStringResponse(200, `{"TOTAL_COUNT": "0", "PAGE_NO": "1", "docs": []}`), nil
		})

	page, err := c.ListByDate(context.Background(), feedDate(), 1, 100)
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	if page.TotalCount != 0 {
		t.Errorf("unexpected total count: %d", page.TotalCount)
	}
}

func TestListByDateGivesUpAfterMaxRetries(t *testing.T) {
	c := newTestClient(t)

	calls := 0
	httpmock.RegisterResponder("GET", testBaseURL,
		func(*http.Request) (*http.Response, error) {
			calls++
			return httpmock.NewStringResponse(503, "down"), nil
		})

	_, err := c.ListByDate(context.Background(), feedDate(), 1, 100)
	if !errors.Is(err, ErrServer) {
		t.Errorf("expected ErrServer, got %v", err)
	}
	if calls != defaultRetries {
		t.Errorf("expected %d attempts, got %d", defaultRetries, calls)
	}
}

func TestListByDateBadRequestNotRetried(t *testing.T) {
	c := newTestClient(t)

	calls := 0
	httpmock.RegisterResponder("GET", testBaseURL,
		func(*http.Request) (*http.Response, error) {
			calls++
			return httpmock.NewStringResponse(400, "bad cert key"), nil
		})

	_, err := c.ListByDate(context.Background(), feedDate(), 1, 100)
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
	if calls != 1 {
		t.Errorf("4xx should not be retried, got %d attempts", calls)
	}
}

func TestListByDateInvalidPage(t *testing.T) {
	c := newTestClient(t)

	_, err := c.ListByDate(context.Background(), feedDate(), 0, 100)
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for page 0, got %v", err)
	}
}
