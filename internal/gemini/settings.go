package gemini

import "strings"

// Settings is the fixed generation configuration sent with every call.
type Settings struct {
	BaseURL         string
	APIVersion      string
	Model           string
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
	SafetyThreshold string
}

var SafetyCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// Defaults for config.Default and DefaultSettings.
const (
	DefaultBaseURL         = "https://generativelanguage.googleapis.com"
	DefaultAPIVersion      = "v1beta"
	DefaultModel           = "gemini-2.0-flash"
	DefaultTemperature     = 0.8
	DefaultTopK            = 40
	DefaultTopP            = 0.95
	DefaultMaxOutputTokens = 1024
	DefaultSafetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
)

func DefaultSettings() Settings {
	return Settings{
		BaseURL:         DefaultBaseURL,
		APIVersion:      DefaultAPIVersion,
		Model:           DefaultModel,
		Temperature:     DefaultTemperature,
		TopK:            DefaultTopK,
		TopP:            DefaultTopP,
		MaxOutputTokens: DefaultMaxOutputTokens,
		SafetyThreshold: DefaultSafetyThreshold,
	}
}

func (s Settings) endpoint() string {
	base := strings.TrimRight(s.BaseURL, "/")
	return base + "/" + strings.Trim(s.APIVersion, "/") + "/models/" + s.Model + ":generateContent"
}

func (s Settings) request(prompt string) GenerateContentRequest {
	safety := make([]SafetySetting, 0, len(SafetyCategories))
	for _, c := range SafetyCategories {
		safety = append(safety, SafetySetting{Category: c, Threshold: s.SafetyThreshold})
	}
	return GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: GenerationConfig{
			Temperature:     s.Temperature,
			TopK:            s.TopK,
			TopP:            s.TopP,
			MaxOutputTokens: s.MaxOutputTokens,
		},
		SafetySettings: safety,
	}
}
