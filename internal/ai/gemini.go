package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	config "github.com/maheshrc27/socialflow/configs"
	"github.com/maheshrc27/socialflow/internal/models"
	genai "google.golang.org/genai"
)

// GeminiGenerator is a thin wrapper around the official genai client. It
// focuses on the API calls themselves; the wizard owns credit gating and
// retry-by-user semantics.
type GeminiGenerator struct {
	cli        *genai.Client
	textModel  string
	imageModel string
}

func NewGeminiGenerator(ctx context.Context, cfg config.Config) (*GeminiGenerator, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{
		cli:        cli,
		textModel:  cfg.GeminiTextModel,
		imageModel: cfg.GeminiImageModel,
	}, nil
}

func (g *GeminiGenerator) ExtractBusinessInfo(ctx context.Context, rawURL string) (*BusinessInfo, error) {
	parsed, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Analyze this business website URL: %s.
Extract the following information and return it in JSON format:
- businessName: The official name of the business.
- description: A concise, catchy summary of what they do.
- niche: The primary industry or category.
- keywords: Array of 5-8 relevant search terms.
- contactInfo: Email, phone, or address found on site.
- primaryColor: A hex color code (e.g. #000000) that represents their brand primary color.`, rawURL)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"businessName": {Type: genai.TypeString},
			"description":  {Type: genai.TypeString},
			"niche":        {Type: genai.TypeString},
			"keywords":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"contactInfo":  {Type: genai.TypeString},
			"primaryColor": {Type: genai.TypeString},
		},
		Required: []string{"businessName", "description", "niche", "keywords"},
	}

	raw, err := g.generateJSON(ctx, g.textModel, prompt, schema)
	if err != nil {
		return nil, err
	}

	var info BusinessInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("unexpected extraction payload: %w", err)
	}

	// Favicon service stands in for a scraped logo.
	info.LogoURL = fmt.Sprintf("https://www.google.com/s2/favicons?sz=128&domain=%s", parsed.Hostname())
	return &info, nil
}

func (g *GeminiGenerator) GeneratePostIdeas(ctx context.Context, profile models.BrandProfile, count int) ([]Idea, error) {
	profileJSON, _ := json.Marshal(profile)
	contactInfo := profile.ContactInfo
	if contactInfo == "" {
		contactInfo = "not provided"
	}

	prompt := fmt.Sprintf(`Based on this business profile: %s,
generate %d high-impact social media post ideas.
IMPORTANT: Each caption MUST include the brand name (%s) and the contact information (%s).
Each idea must also be assigned a 'visualStyle' from these three: 'Editorial', 'Commercial', 'Minimalist'.
Each idea must include:
1. A professional caption with hashtags and contact details.
2. A specific image prompt for a background visual that uses the brand color (%s).
3. visualStyle: Assign one of the three styles to this post.
DO NOT include text or logos in the image prompt.
Return as a JSON array.`, profileJSON, count, profile.BusinessName, contactInfo, profile.PrimaryColor)

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"caption":     {Type: genai.TypeString},
				"imagePrompt": {Type: genai.TypeString},
				"visualStyle": {Type: genai.TypeString},
			},
			Required: []string{"caption", "imagePrompt", "visualStyle"},
		},
	}

	raw, err := g.generateJSON(ctx, g.textModel, prompt, schema)
	if err != nil {
		return nil, err
	}

	var ideas []Idea
	if err := json.Unmarshal(raw, &ideas); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("unexpected ideas payload: %w", err)
	}
	return ideas, nil
}

func (g *GeminiGenerator) GenerateImage(ctx context.Context, prompt string, profile models.BrandProfile) (*Image, error) {
	colorTheme := profile.PrimaryColor
	if colorTheme == "" {
		colorTheme = "corporate colors"
	}

	enhanced := strings.TrimSpace(fmt.Sprintf(`High-end professional commercial background visual.
SCENE: %s
COLOR THEME: Influenced by %s.
STYLE: Clean, minimalist, high-end photography/digital art, no text, no characters' faces if possible. 8k resolution.`, prompt, colorTheme))

	resp, err := g.cli.Models.GenerateContent(ctx, g.imageModel,
		[]*genai.Content{{Parts: []*genai.Part{{Text: enhanced}}}},
		nil,
	)
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &Image{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	return &Image{URL: FallbackImageURL(prompt)}, nil
}

func (g *GeminiGenerator) generateJSON(ctx context.Context, model, prompt string, schema *genai.Schema) (json.RawMessage, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyReply
	}
	return json.RawMessage(resp.Candidates[0].Content.Parts[0].Text), nil
}
