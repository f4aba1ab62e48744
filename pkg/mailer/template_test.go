package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wantMeta map[string]any
		name     string
		input    string
		wantBody string
		wantErr  bool
	}{
		{
			name:     "with front matter",
			input:    "---\nSubject: \"[Site] {{.Subject}}\"\nForm: contact\n---\n# Nouveau message\n\nCorps.\n",
			wantMeta: map[string]any{"Subject": "[Site] {{.Subject}}", "Form": "contact"},
			wantBody: "# Nouveau message\n\nCorps.\n",
		},
		{
			name:     "without front matter",
			input:    "# Bonjour\n\nTexte seul.",
			wantMeta: map[string]any{},
			wantBody: "# Bonjour\n\nTexte seul.",
		},
		{
			name:     "empty front matter",
			input:    "---\n---\nCorps.",
			wantMeta: map[string]any{},
			wantBody: "Corps.",
		},
		{
			name:     "blank line inside empty front matter",
			input:    "---\n\n---\nCorps.",
			wantMeta: map[string]any{},
			wantBody: "Corps.",
		},
		{
			name:     "windows line endings",
			input:    "---\r\nSubject: Test\r\n---\r\nCorps",
			wantMeta: map[string]any{"Subject": "Test"},
			wantBody: "Corps",
		},
		{
			name:     "empty body",
			input:    "---\nSubject: Test\n---\n",
			wantMeta: map[string]any{"Subject": "Test"},
			wantBody: "",
		},
		{
			name:     "empty content",
			input:    "",
			wantMeta: map[string]any{},
			wantBody: "",
		},
		{
			name:    "missing closing delimiter",
			input:   "---\nSubject: Test\nCorps sans fin",
			wantErr: true,
		},
		{
			name:    "nothing after opening delimiter",
			input:   "---",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			input:   "---\nSubject: [unclosed\n---\nCorps",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseTemplate([]byte(tt.input))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFrontmatter)
				require.Nil(t, tmpl)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantMeta, tmpl.Metadata)
			require.Equal(t, tt.wantBody, tmpl.Body)
		})
	}
}

func TestParseTemplate_BodyKeepsDelimitersInCodeBlocks(t *testing.T) {
	t.Parallel()

	content := []byte("---\nSubject: Exemple\n---\nVoici :\n\n```\n---\nkey: value\n---\n```\n")

	tmpl, err := ParseTemplate(content)
	require.NoError(t, err)
	require.Equal(t, "Exemple", tmpl.Metadata["Subject"])
	require.Contains(t, tmpl.Body, "key: value")
}

func TestParseTemplate_NestedMetadata(t *testing.T) {
	t.Parallel()

	content := []byte("---\nSubject: Devis\nTags:\n  - contact\n  - site\nPriority: 2\n---\nBody")

	tmpl, err := ParseTemplate(content)
	require.NoError(t, err)

	tags, ok := tmpl.Metadata["Tags"].([]any)
	require.True(t, ok)
	require.Equal(t, []any{"contact", "site"}, tags)
	require.Equal(t, 2, tmpl.Metadata["Priority"])
}
