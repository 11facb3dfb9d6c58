package kakao

import "time"

// Target restricts which document field a query matches.
type Target string

const (
	TargetTitle     Target = "title"
	TargetISBN      Target = "isbn"
	TargetPublisher Target = "publisher"
	TargetPerson    Target = "person"
)

// SearchParams are the parameters for a book search.
type SearchParams struct {
	Query  string
	Target Target // Empty searches all fields
	Page   int    // 1-based; defaults to 1
	Size   int    // Defaults to 50, capped at 50
}

// Document is one book in a search response.
type Document struct {
	Title      string    `json:"title"`
	Contents   string    `json:"contents"`
	URL        string    `json:"url"`
	ISBN       string    `json:"isbn"` // "10-digit 13-digit", space separated
	Datetime   time.Time `json:"datetime"`
	Authors    []string  `json:"authors"`
	Publisher  string    `json:"publisher"`
	Translator []string  `json:"translators"`
	Price      int64     `json:"price"`
	SalePrice  int64     `json:"sale_price"`
	Thumbnail  string    `json:"thumbnail"`
	Status     string    `json:"status"`
}

// Meta describes the full result set of a search.
type Meta struct {
	TotalCount    int  `json:"total_count"`
	PageableCount int  `json:"pageable_count"`
	IsEnd         bool `json:"is_end"`
}

// Result is one page of search results.
type Result struct {
	Meta      Meta       `json:"meta"`
	Documents []Document `json:"documents"`
}
