package models

// DefaultPrimaryColor is substituted whenever brand extraction returns a
// missing or malformed color value.
const DefaultPrimaryColor = "#6366f1"

type BrandProfile struct {
	BusinessName string   `json:"business_name"`
	Description  string   `json:"description"`
	Niche        string   `json:"niche"`
	Keywords     []string `json:"keywords"`
	ContactInfo  string   `json:"contact_info"`
	PrimaryColor string   `json:"primary_color"`
	LogoURL      string   `json:"logo_url"`
}

func DefaultBrandProfile() BrandProfile {
	return BrandProfile{PrimaryColor: DefaultPrimaryColor}
}

const (
	VisualStyleEditorial  = "Editorial"
	VisualStyleCommercial = "Commercial"
	VisualStyleMinimalist = "Minimalist"
)

// Candidate is a single generated post draft, alive only inside the wizard
// session that produced it.
type Candidate struct {
	ID          string `json:"id"`
	Caption     string `json:"caption"`
	ImagePrompt string `json:"image_prompt"`
	VisualStyle string `json:"visual_style"`
	ImageURL    string `json:"image_url"`
}

// Platforms is the fixed roster of publish targets. Connections are local
// flags against these ids, not real credentials.
var Platforms = []string{"X", "Facebook", "LinkedIn", "Instagram"}

func IsKnownPlatform(id string) bool {
	for _, p := range Platforms {
		if p == id {
			return true
		}
	}
	return false
}
