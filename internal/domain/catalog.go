package domain

import "time"

// Author is a person or group credited on catalog entries.
type Author struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Publisher is an imprint or publishing house.
type Publisher struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event is a time-bounded promotion or announcement shown in the catalog.
type Event struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Content is a piece of editorial content (curation, notice, article).
type Content struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAuthorRequest carries the fields for creating an author.
type CreateAuthorRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description,omitempty" validate:"max=2000"`
}

// UpdateAuthorRequest carries the fields for a partial author update.
type UpdateAuthorRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// CreatePublisherRequest carries the fields for creating a publisher.
type CreatePublisherRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// UpdatePublisherRequest carries the fields for a partial publisher update.
type UpdatePublisherRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
}

// CreateEventRequest carries the fields for creating an event.
type CreateEventRequest struct {
	Title    string     `json:"title" validate:"required,min=1,max=300"`
	Body     string     `json:"body,omitempty" validate:"max=10000"`
	ImageURL string     `json:"image_url,omitempty" validate:"omitempty,url"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

// UpdateEventRequest carries the fields for a partial event update.
type UpdateEventRequest struct {
	Title    *string    `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Body     *string    `json:"body,omitempty" validate:"omitempty,max=10000"`
	ImageURL *string    `json:"image_url,omitempty" validate:"omitempty,url"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

// CreateContentRequest carries the fields for creating editorial content.
type CreateContentRequest struct {
	Title string `json:"title" validate:"required,min=1,max=300"`
	Body  string `json:"body,omitempty" validate:"max=50000"`
	Kind  string `json:"kind,omitempty" validate:"omitempty,oneof=curation notice article"`
}

// UpdateContentRequest carries the fields for a partial content update.
type UpdateContentRequest struct {
	Title *string `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Body  *string `json:"body,omitempty" validate:"omitempty,max=50000"`
	Kind  *string `json:"kind,omitempty" validate:"omitempty,oneof=curation notice article"`
}
