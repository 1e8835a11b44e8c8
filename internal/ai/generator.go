package ai

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/maheshrc27/socialflow/internal/models"
)

var (
	ErrInvalidURL = errors.New("invalid url: scheme must be http or https")
	ErrEmptyReply = errors.New("model returned no candidates")
)

type BusinessInfo struct {
	BusinessName string   `json:"businessName"`
	Description  string   `json:"description"`
	Niche        string   `json:"niche"`
	Keywords     []string `json:"keywords"`
	ContactInfo  string   `json:"contactInfo"`
	PrimaryColor string   `json:"primaryColor"`
	LogoURL      string   `json:"logoUrl"`
}

type Idea struct {
	Caption     string `json:"caption"`
	ImagePrompt string `json:"imagePrompt"`
	VisualStyle string `json:"visualStyle"`
}

// Image carries either inline bytes from the image model or, when the model
// returned no inline data, a ready-to-use fallback URL.
type Image struct {
	Data     []byte
	MIMEType string
	URL      string
}

// Generator is the AI collaborator contract: an opaque, possibly slow,
// possibly failing remote call at every method.
type Generator interface {
	ExtractBusinessInfo(ctx context.Context, rawURL string) (*BusinessInfo, error)
	GeneratePostIdeas(ctx context.Context, profile models.BrandProfile, count int) ([]Idea, error)
	GenerateImage(ctx context.Context, prompt string, profile models.BrandProfile) (*Image, error)
}

// ValidateURL rejects anything that is not an absolute http(s) URL before an
// extraction call is attempted.
func ValidateURL(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return nil, ErrInvalidURL
	}
	return parsed, nil
}

// FallbackImageURL is the deterministic stand-in used when the image model
// yields no inline data; the seed is derived from the prompt alone.
func FallbackImageURL(prompt string) string {
	seed := url.QueryEscape(prompt)
	if len(seed) > 10 {
		seed = seed[:10]
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/800/800", seed)
}
