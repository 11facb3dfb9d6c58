package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bookhive/bookhive-server/internal/domain"
	"github.com/bookhive/bookhive-server/internal/metadata/kakao"
)

// SearchLogStore streams user search logs as a stable, ID-ordered feed.
type SearchLogStore interface {
	ListSearchLogsAfter(ctx context.Context, afterID int64, from, to time.Time, limit int) ([]*domain.SearchLog, error)
}

// KeywordSearchClient is the slice of the kakao client the keyword
// reader needs.
type KeywordSearchClient interface {
	Search(ctx context.Context, params kakao.SearchParams) (*kakao.Result, error)
}

const logBatchSize = 50

// KeywordReader replays user search keywords against the book search
// API and streams every matching document. It walks a two-level
// cursor: the search log ID on the outside, the API page on the
// inside, and both levels survive a restart through the execution
// context.
//
// A search failure for one keyword abandons that keyword with a
// warning and moves on; losing one keyword's results is cheaper than
// failing the whole run.
type KeywordReader struct {
	store    SearchLogStore
	search   KeywordSearchClient
	from     time.Time
	to       time.Time
	pageSize int
	logger   *slog.Logger

	// Outer cursor: search logs.
	afterID    int64
	logBuffer  []*domain.SearchLog
	logPos     int
	logsDone   bool
	currentLog *domain.SearchLog

	// Inner cursor: API pages for the current keyword.
	page       int // Next page to fetch, 1-based; 0 when no log is in progress
	docs       []kakao.Document
	docPos     int
	keywordEnd bool

	// Restore state from Open.
	resumeLogID int64
	resumePage  int

	logsConsumed int64
}

// NewKeywordReader creates a reader that replays the search logs whose
// searched_at falls within [from, to).
func NewKeywordReader(store SearchLogStore, search KeywordSearchClient, from, to time.Time, pageSize int, logger *slog.Logger) *KeywordReader {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &KeywordReader{
		store:    store,
		search:   search,
		from:     from,
		to:       to,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Open restores the two-level cursor from the execution context.
// A saved page of 0 means the saved log was fully consumed and the
// stream resumes after it; a page of 1 or more re-enters that log at
// that page.
func (r *KeywordReader) Open(_ context.Context, ec *ExecutionContext) error {
	logID := ec.GetInt64("log_id", 0)
	page := ec.GetInt("page", 0)

	if page >= 1 && logID > 0 {
		r.afterID = logID - 1
		r.resumeLogID = logID
		r.resumePage = page
	} else {
		r.afterID = logID
	}
	return nil
}

// Next returns the next search document across all keywords in the
// window. Returns ErrEndOfData when every log has been replayed.
func (r *KeywordReader) Next(ctx context.Context) (kakao.Document, error) {
	for {
		if r.docPos < len(r.docs) {
			doc := r.docs[r.docPos]
			r.docPos++
			return doc, nil
		}

		if r.currentLog != nil && !r.keywordEnd {
			if err := r.fetchKeywordPage(ctx); err != nil {
				return kakao.Document{}, err
			}
			continue
		}

		// Current keyword done; advance the outer cursor.
		log, err := r.nextLog(ctx)
		if err != nil {
			return kakao.Document{}, err
		}
		if log == nil {
			return kakao.Document{}, ErrEndOfData
		}

		// Malformed log entries carry no keyword; skip them without
		// touching the client.
		if strings.TrimSpace(log.Keyword) == "" {
			r.logger.Debug("blank keyword skipped", "log_id", log.ID)
			r.afterID = log.ID
			continue
		}

		r.currentLog = log
		r.keywordEnd = false
		r.page = 1
		if log.ID == r.resumeLogID {
			r.page = r.resumePage
		}
	}
}

// fetchKeywordPage pulls the next API page for the current keyword.
func (r *KeywordReader) fetchKeywordPage(ctx context.Context) error {
	result, err := r.search.Search(ctx, kakao.SearchParams{
		Query: r.currentLog.Keyword,
		Page:  r.page,
		Size:  r.pageSize,
	})
	if err != nil {
		// Abandon this keyword, keep the run alive.
		r.logger.Warn("keyword search failed, skipping keyword",
			"keyword", r.currentLog.Keyword,
			"log_id", r.currentLog.ID,
			"page", r.page,
			"error", err,
		)
		r.finishCurrentLog()
		return nil
	}

	r.docs = result.Documents
	r.docPos = 0
	r.page++

	// A short page ends the keyword even when the API's own end flag
	// lags behind.
	if result.Meta.IsEnd || len(result.Documents) == 0 || len(result.Documents) < r.pageSize {
		r.keywordEnd = true
		if len(result.Documents) == 0 {
			r.finishCurrentLog()
		}
	}
	return nil
}

// finishCurrentLog marks the current log fully consumed.
func (r *KeywordReader) finishCurrentLog() {
	r.afterID = r.currentLog.ID
	r.currentLog = nil
	r.keywordEnd = false
	r.page = 0
	r.docs = nil
	r.docPos = 0
}

// nextLog advances the outer cursor, fetching log batches as needed.
// Returns nil when the window is exhausted.
func (r *KeywordReader) nextLog(ctx context.Context) (*domain.SearchLog, error) {
	if r.currentLog != nil {
		r.finishCurrentLog()
	}

	if r.logPos >= len(r.logBuffer) {
		if r.logsDone {
			return nil, nil
		}
		logs, err := r.store.ListSearchLogsAfter(ctx, r.afterID, r.from, r.to, logBatchSize)
		if err != nil {
			return nil, err
		}
		if len(logs) == 0 {
			r.logsDone = true
			return nil, nil
		}
		r.logBuffer = logs
		r.logPos = 0
		if len(logs) < logBatchSize {
			r.logsDone = true
		}
	}

	log := r.logBuffer[r.logPos]
	r.logPos++
	r.logsConsumed++
	return log, nil
}

// LogsConsumed reports how many search logs the reader has replayed.
func (r *KeywordReader) LogsConsumed() int64 {
	return r.logsConsumed
}

// Close releases the reader. The store and client are shared.
func (r *KeywordReader) Close(context.Context) error {
	return nil
}

// SaveTo records the two-level cursor so a restart resumes mid-keyword.
func (r *KeywordReader) SaveTo(ec *ExecutionContext) {
	if r.currentLog == nil {
		ec.PutInt64("log_id", r.afterID)
		ec.PutInt("page", 0)
		return
	}

	ec.PutInt64("log_id", r.currentLog.ID)
	if r.docPos < len(r.docs) {
		// Part of the fetched page is unconsumed; re-fetch it on
		// restart. The writer deduplicates the overlap.
		ec.PutInt("page", r.page-1)
	} else if r.keywordEnd {
		ec.PutInt("page", 0)
	} else {
		ec.PutInt("page", r.page)
	}
}
