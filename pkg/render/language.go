package render

import "github.com/go-enry/go-enry/v2"

// fallbackLanguage is used when detection fails or confidence is low.
const fallbackLanguage = "text"

// classifierCandidates bounds the enry classifier to languages that actually
// show up in fenced blocks of prose documents.
//
//nolint:gochecknoglobals // static candidate list
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// DetectLanguage returns a highlighting language for an untagged code block.
// Shebangs are the most reliable signal; otherwise the enry classifier is
// trusted only when it reports a safe match.
func DetectLanguage(content []byte) string {
	if len(content) == 0 {
		return fallbackLanguage
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return normalizeLanguage(lang)
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalizeLanguage(lang)
	}

	return fallbackLanguage
}

// normalizeLanguage maps enry display names to the lowercase tags chroma and
// fence info strings use.
func normalizeLanguage(lang string) string {
	switch lang {
	case "Go":
		return "go"
	case "Python":
		return "python"
	case "Shell":
		return "bash"
	case "JavaScript":
		return "javascript"
	case "TypeScript":
		return "typescript"
	case "Ruby":
		return "ruby"
	case "Rust":
		return "rust"
	case "Java":
		return "java"
	case "C":
		return "c"
	case "C++":
		return "cpp"
	case "SQL":
		return "sql"
	case "JSON":
		return "json"
	case "YAML":
		return "yaml"
	case "HTML":
		return "html"
	case "CSS":
		return "css"
	case "Dockerfile":
		return "dockerfile"
	default:
		return fallbackLanguage
	}
}
