package models

import "time"

type Post struct {
	ID            string       `json:"id"`
	Caption       string       `json:"caption"`
	ImageURL      string       `json:"image_url"`
	Status        string       `json:"status"` // posted, scheduled, draft
	ScheduledTime *time.Time   `json:"scheduled_time,omitempty"`
	Platforms     []string     `json:"platforms"`
	CreatedAt     time.Time    `json:"created_at"`
	BusinessInfo  BrandProfile `json:"business_info"`
}

type SavedIdea struct {
	ID           string       `json:"id"`
	Caption      string       `json:"caption"`
	ImagePrompt  string       `json:"image_prompt"`
	VisualStyle  string       `json:"visual_style"`
	ImageURL     string       `json:"image_url"`
	BusinessInfo BrandProfile `json:"business_info"`
	SavedAt      time.Time    `json:"saved_at"`
}

const (
	PostStatusScheduled = "scheduled"
	PostStatusPosted    = "posted"
	PostStatusDraft     = "draft"
)
