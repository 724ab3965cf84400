package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRichFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rich  bool
	}{
		{"plain text", "Un simple paragraphe.", false},
		{"legacy marker only", "Avant [img:https://cdn.example.com/a.jpg] après", false},
		{"paragraph tag", "<p>Un paragraphe riche.</p>", true},
		{"uppercase tag", "<P>Majuscules</P>", true},
		{"tag with attributes", `<img src="https://cdn.example.com/a.jpg" alt="">`, true},
		{"both formats, html wins", "<p>riche</p> [img:https://cdn.example.com/a.jpg]", true},
		{"lone angle brackets", "2 < 3 et 5 > 4", false},
		{"closing tag only", "pas de balise ouvrante </p>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rich, IsRichFormat(tt.input))
		})
	}
}

func TestRenderRichPassesThrough(t *testing.T) {
	html := `<h2>Titre</h2><p>Corps avec [img:https://cdn.example.com/a.jpg] marqueur ignoré.</p>`

	out := Render(html)
	assert.True(t, out.Rich)
	assert.Equal(t, html, out.HTML, "rich HTML is served verbatim, markers included")
	assert.Empty(t, out.Fragments)
}

func TestRenderLegacyFragments(t *testing.T) {
	out := Render("a[img:https://cdn.example.com/u.jpg]b")
	require.False(t, out.Rich)
	require.Len(t, out.Fragments, 3)

	assert.Equal(t, FragmentText, out.Fragments[0].Kind)
	assert.Equal(t, "a", out.Fragments[0].Text)
	assert.Equal(t, FragmentImage, out.Fragments[1].Kind)
	assert.Equal(t, "https://cdn.example.com/u.jpg", out.Fragments[1].ImageURL)
	assert.Equal(t, FragmentText, out.Fragments[2].Kind)
	assert.Equal(t, "b", out.Fragments[2].Text)
}

func TestRenderLegacyEdgeCases(t *testing.T) {
	t.Run("marker at the start drops the empty fragment", func(t *testing.T) {
		out := Render("[img:https://cdn.example.com/u.jpg] légende")
		require.Len(t, out.Fragments, 2)
		assert.Equal(t, FragmentImage, out.Fragments[0].Kind)
		assert.Equal(t, " légende", out.Fragments[1].Text)
	})

	t.Run("adjacent markers produce no empty text", func(t *testing.T) {
		out := Render("[img:https://a.example/1.jpg][img:https://a.example/2.jpg]")
		require.Len(t, out.Fragments, 2)
		assert.Equal(t, FragmentImage, out.Fragments[0].Kind)
		assert.Equal(t, FragmentImage, out.Fragments[1].Kind)
	})

	t.Run("unclosed marker stays plain text", func(t *testing.T) {
		out := Render("texte [img:https://cdn.example.com/u.jpg sans crochet")
		require.Len(t, out.Fragments, 1)
		assert.Equal(t, FragmentText, out.Fragments[0].Kind)
		assert.Equal(t, "texte [img:https://cdn.example.com/u.jpg sans crochet", out.Fragments[0].Text)
	})

	t.Run("line breaks survive inside text fragments", func(t *testing.T) {
		out := Render("ligne 1\nligne 2")
		require.Len(t, out.Fragments, 1)
		assert.Equal(t, "ligne 1\nligne 2", out.Fragments[0].Text)
	})

	t.Run("empty document renders empty", func(t *testing.T) {
		out := Render("")
		assert.False(t, out.Rich)
		assert.Empty(t, out.Fragments)
	})
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxChars int
		expected string
	}{
		{
			name:     "legacy marker removed",
			input:    "a[img:https://cdn.example.com/u.jpg]b",
			maxChars: 0,
			expected: "a b",
		},
		{
			name:     "html stripped and collapsed",
			input:    "<p>Un  paragraphe</p>\n<p>et un autre</p>",
			maxChars: 0,
			expected: "Un paragraphe et un autre",
		},
		{
			name:     "short text untouched",
			input:    "Texte court",
			maxChars: 50,
			expected: "Texte court",
		},
		{
			name:     "cut with ellipsis",
			input:    "Conakry accueille un sommet régional",
			maxChars: 16,
			expected: "Conakry accueill…",
		},
		{
			name:     "cut trims the trailing space",
			input:    "Conakry accueille",
			maxChars: 8,
			expected: "Conakry…",
		},
		{
			name:     "accents count as one char",
			input:    "Économie générale",
			maxChars: 8,
			expected: "Économie…",
		},
		{
			name:     "exact length keeps everything",
			input:    "Dix chars.",
			maxChars: 10,
			expected: "Dix chars.",
		},
		{
			name:     "only markers give an empty excerpt",
			input:    "[img:https://a.example/1.jpg][img:https://a.example/2.jpg]",
			maxChars: 100,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Excerpt(tt.input, tt.maxChars))
		})
	}
}
