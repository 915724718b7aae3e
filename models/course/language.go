package course

import "strings"

// LanguagePlaintext is used when neither the fence tag nor the course language is known.
const LanguagePlaintext = "plaintext"

// Languages is the closed set accepted for CodeExample.Language.
var Languages = map[string]bool{
	LanguagePlaintext: true,
	"html":            true,
	"css":             true,
	"javascript":      true,
	"typescript":      true,
	"python":          true,
	"php":             true,
	"cpp":             true,
	"c":               true,
	"java":            true,
	"dart":            true,
	"sql":             true,
	"bash":            true,
	"json":            true,
	"xml":             true,
}

var languageAliases = map[string]string{
	"js":  "javascript",
	"c++": "cpp",
	"py":  "python",
}

// IsAllowedLanguage reports whether lang is a member of Languages.
func IsAllowedLanguage(lang string) bool {
	return Languages[lang]
}

// NormalizeLanguage lowercases and trims tag, resolves aliases, and falls back
// to fallback (when allowed) or plaintext.
func NormalizeLanguage(tag, fallback string) string {
	lang := strings.ToLower(strings.TrimSpace(tag))
	if alias, ok := languageAliases[lang]; ok {
		lang = alias
	}
	if IsAllowedLanguage(lang) {
		return lang
	}
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if IsAllowedLanguage(fallback) {
		return fallback
	}
	return LanguagePlaintext
}
