package domain

import "time"

// SearchLog records a keyword a user searched for. The replay ingestion
// job walks these to discover books users looked for but the catalog
// does not yet have.
type SearchLog struct {
	ID         int64     `json:"id"`
	Keyword    string    `json:"keyword"`
	SearchedAt time.Time `json:"searched_at"`
}
