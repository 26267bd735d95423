package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripLexicalJSON(t *testing.T) {
	content := `{"root":{"type":"root","children":[` +
		`{"type":"paragraph","children":[{"type":"text","text":"hello "},{"type":"text","text":"world"}]},` +
		`{"type":"paragraph","children":[{"type":"text","text":"second line"}]}]}}`

	plain := Strip(content)
	assert.Equal(t, "hello world\nsecond line", plain)
}

func TestStripHTMLFallback(t *testing.T) {
	plain := Strip("<p>hello <b>world</b></p>")
	assert.Equal(t, "hello  world", plain)
}

func TestStripEmpty(t *testing.T) {
	assert.Equal(t, "", Strip(""))
	assert.Equal(t, "", Strip("   "))
}

func TestStripMalformedLexicalFallsBack(t *testing.T) {
	plain := Strip(`{"root": not json`)
	assert.Equal(t, `{"root": not json`, plain)
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 2, WordCount("  hello   world  "))
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 3, WordCount("one\ntwo\tthree"))
}
