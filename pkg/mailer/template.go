package mailer

import (
	"errors"
	"fmt"

	"github.com/glconseil/vitrine/pkg/frontmatter"
)

// Template is an email template split into metadata and a body.
type Template struct {
	Metadata map[string]any
	Body     string
}

// ParseTemplate extracts YAML front matter metadata and the markdown body.
// Content without front matter yields empty metadata and the full content as body.
func ParseTemplate(content []byte) (*Template, error) {
	metadata := make(map[string]any)
	body, err := frontmatter.Parse(content, &metadata)
	if err != nil {
		if errors.Is(err, frontmatter.ErrInvalid) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
		return nil, err
	}
	return &Template{Metadata: metadata, Body: string(body)}, nil
}
