package polish

import "strings"

// textPlaceholder marks where the reply text goes in a custom prompt.
const textPlaceholder = "{{text}}"

// DefaultPolishPrompt is used when no prompt is configured.
const DefaultPolishPrompt = "You are a professional text-polishing assistant. " +
	"Improve the fluency, clarity, and naturalness of the text without changing its meaning. " +
	"Keep the original tone and all information intact; do not add new facts. " +
	"Output only the final polished text, with no explanation.\n\n" +
	"Text to polish:\n{{text}}"

// systemPrompt pins the model to bare output so the reply chain never
// carries meta commentary.
const systemPrompt = "You are an assistant that outputs only the final polished text."

// buildUserPrompt renders the polish prompt for the given text. Two
// template styles are accepted: an explicit {{text}} placeholder, or a
// bare instruction with the text appended after it.
func buildUserPrompt(template, text string) string {
	tpl := strings.TrimSpace(template)
	if tpl == "" {
		tpl = DefaultPolishPrompt
	}
	if strings.Contains(tpl, textPlaceholder) {
		return strings.ReplaceAll(tpl, textPlaceholder, text)
	}
	return tpl + "\n\nText to polish:\n" + text
}
