package highlight

import "strings"

// engineLanguages maps execution engine kinds to Chroma lexer names.
var engineLanguages = map[string]string{
	"stack":  "forth",
	"remote": "forth",
	"shell":  "bash",
}

// LanguageFor picks the lexer for a program: an explicit language wins,
// otherwise the engine kind decides. Returns "" when nothing matches.
func LanguageFor(language, engineKind string) string {
	if language = strings.TrimSpace(language); language != "" {
		return strings.ToLower(language)
	}
	return engineLanguages[strings.ToLower(engineKind)]
}
