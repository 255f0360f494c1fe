package services

import (
	"strings"

	"github.com/sbilibin2017/gw-content-studio/internal/models"
)

const systemPrompt = "You are an expert digital marketer. Write original, persuasive content optimized for the requested channel."

const maxTitleLength = 100

var contentLabels = map[models.ContentType]string{
	models.InstagramPost: "an Instagram post",
	models.BlogArticle:   "a blog article",
	models.FacebookAd:    "a Facebook ad",
	models.EmailCopy:     "a marketing email",
	models.CTACopy:       "call-to-action copy",
}

var contentInstructions = map[models.ContentType]string{
	models.InstagramPost: "Format it as an Instagram post with emojis, hashtags and a call to action.",
	models.BlogArticle:   "Write a blog article with an introduction, body sections with headings and a conclusion. Optimize it for SEO.",
	models.FacebookAd:    "Write a persuasive Facebook ad with a catchy headline, a clear description and a strong call to action.",
	models.EmailCopy:     "Write a subject line followed by the email body and end with a single clear call to action.",
	models.CTACopy:       "Write several short call-to-action variants, one per line.",
}

// buildPrompt assembles the user prompt from the request and, when present,
// the author's profile. Empty request fields are left out.
func buildPrompt(req GenerateRequest, profile *models.Profile) string {
	var b strings.Builder
	b.WriteString("Write ")
	b.WriteString(contentLabels[req.Type])
	b.WriteString(".")

	writeLine(&b, "Theme", req.Theme)
	writeLine(&b, "Objective", req.Objective)
	writeLine(&b, "Tone of voice", req.Tone)

	if profile != nil {
		writeLine(&b, "Business niche", profile.BusinessType)
		writeLine(&b, "Target persona", profile.TargetPersona)
		writeLine(&b, "Channels", strings.Join(profile.Channels, ", "))
	}

	b.WriteString("\n")
	b.WriteString(contentInstructions[req.Type])
	return b.String()
}

func writeLine(b *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	b.WriteString("\n")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
}

// resolveTitle prefers the requested theme and otherwise derives a title from
// the first line of the generated text. Returns nil when neither yields text.
func resolveTitle(theme, generated string) *string {
	title := strings.TrimSpace(theme)
	if title == "" {
		first, _, _ := strings.Cut(generated, "\n")
		title = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(first), "# "))
	}
	if runes := []rune(title); len(runes) > maxTitleLength {
		title = strings.TrimSpace(string(runes[:maxTitleLength]))
	}
	if title == "" {
		return nil
	}
	return &title
}
