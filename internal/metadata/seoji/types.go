package seoji

// Document is one bibliographic record from the feed.
type Document struct {
	ISBN           string // EA_ISBN; may contain several whitespace-separated ISBNs
	SetISBN        string
	Title          string
	Author         string
	Publisher      string
	PrePrice       string // Numeric string; may be empty or non-numeric
	PublishPredate string // yyyyMMdd
	ImageURL       string
}

// Page is one page of feed results.
type Page struct {
	TotalCount int
	PageNo     int // Page number echoed by the server; 0 when absent
	Documents  []Document
}

// Raw API response types (internal). The feed serializes every field,
// including counters, as JSON strings.

type rawResponse struct {
	TotalCount string   `json:"TOTAL_COUNT"`
	PageNo     string   `json:"PAGE_NO"`
	Docs       []rawDoc `json:"docs"`
}

type rawDoc struct {
	EAISBN         string `json:"EA_ISBN"`
	SetISBN        string `json:"SET_ISBN"`
	Title          string `json:"TITLE"`
	Author         string `json:"AUTHOR"`
	Publisher      string `json:"PUBLISHER"`
	PrePrice       string `json:"PRE_PRICE"`
	PublishPredate string `json:"PUBLISH_PREDATE"`
	TitleURL       string `json:"TITLE_URL"`
}
