package markup

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Notes store rich text as Lexical editor JSON. Strip walks the node tree
// and keeps only the text content, one line per block, which is what gets
// persisted as the note's plain_text and fed into word counting.

type lexicalRoot struct {
	Root node `json:"root"`
}

type node struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Children []node `json:"children,omitempty"`
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Strip converts rich note content to plain text. Lexical JSON is walked
// node by node; anything else is treated as HTML-ish markup and has its
// tags removed.
func Strip(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, `{"root":`) {
		var root lexicalRoot
		if err := json.Unmarshal([]byte(trimmed), &root); err == nil {
			var sb strings.Builder
			walk(root.Root, &sb)
			return strings.TrimSpace(sb.String())
		}
		// Fall through: malformed lexical payloads get tag-stripped below.
	}

	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(trimmed, " "))
}

func walk(n node, sb *strings.Builder) {
	switch n.Type {
	case "text":
		sb.WriteString(n.Text)
	case "linebreak":
		sb.WriteString("\n")
	default:
		for _, child := range n.Children {
			walk(child, sb)
		}
		// Block-level nodes separate their text with newlines so that
		// adjacent paragraphs don't run their words together.
		switch n.Type {
		case "paragraph", "heading", "listitem", "quote", "tablerow":
			sb.WriteString("\n")
		}
	}
}

// WordCount counts whitespace-delimited tokens in the trimmed text.
// Empty content counts as zero.
func WordCount(plainText string) int {
	return len(strings.Fields(plainText))
}
