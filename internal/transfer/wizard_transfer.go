package transfer

import "github.com/maheshrc27/socialflow/internal/models"

type ScanRequest struct {
	URL string `json:"url"`
}

type BrandRequest struct {
	Brand models.BrandProfile `json:"brand"`
}

type CaptionRequest struct {
	Index   int    `json:"index"`
	Caption string `json:"caption"`
}

type ImageRequest struct {
	Index  int    `json:"index"`
	Prompt string `json:"prompt"`
}

type IndexRequest struct {
	Index int `json:"index"`
}

type FinalizeRequest struct {
	Platforms []string `json:"platforms"`
	Schedule  bool     `json:"schedule"`
}

type TopUpRequest struct {
	Amount int `json:"amount"`
}

type ToggleConnectionRequest struct {
	Platform string `json:"platform"`
}

type IdeaRequest struct {
	ID        string   `json:"id"`
	Platforms []string `json:"platforms,omitempty"`
}
