package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents one entry in the chat transcript
type Message struct {
	ID         string    `json:"id"`
	Role       Role      `json:"role"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	IsAnalysis bool      `json:"is_analysis,omitempty"`
	IsError    bool      `json:"is_error,omitempty"`
}

// Entity represents a typed subject of interest extracted from user text.
// Count is derived from the recommendations resolved for it in the
// current pipeline run.
type Entity struct {
	Type  EntityType `json:"type"`
	Name  string     `json:"name"`
	Count int        `json:"count"`
}

// Recommendation represents a single suggested item belonging to one
// entity type. Optional upstream fields are pointers or omitempty so
// their absence survives serialization.
type Recommendation struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Type        EntityType `json:"type"`
	Description string     `json:"description,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	Year        *int       `json:"year,omitempty"`
	Author      string     `json:"author,omitempty"`
	Genre       string     `json:"genre,omitempty"`
	Location    string     `json:"location,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
}
