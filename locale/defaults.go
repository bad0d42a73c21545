package locale

// DefaultTag is the locale used when no other is configured.
const DefaultTag = "en"

// builtinDefaults backs every lookup as the last resort, so the core keys
// always resolve even with no bundle files on disk.
var builtinDefaults = map[string]any{
	"tutor": map[string]any{
		"title":       "AI Tutor",
		"placeholder": "Ask a question...",
		"sources":     "Sources",
		"greeting":    "Hello! I'm the campus AI tutor. How can I help you today?",
		"error":       "An error occurred while communicating with the AI. Please try again.",
		"instruction": "You are a friendly and helpful AI tutor for a school website. " +
			"Answer questions about the school, its programs, admissions, and campus " +
			"life concisely and accurately. Use web search to ground factual answers " +
			"and cite your sources.",
	},
}
