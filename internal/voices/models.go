package voices

// Voice categories.
const (
	CategoryRealistic = "realistic"
	CategoryCharacter = "character"
)

// Voice is a text-to-speech voice the caller can pick.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
	IsAvailable bool   `json:"is_available"`
}
