// Package frontmatter splits documents into a YAML header and a body.
//
// A document with front matter starts with a line containing only "---",
// followed by YAML, followed by another "---" line:
//
//	---
//	title: Notre approche
//	---
//	Body text...
//
// Documents without the opening delimiter have no metadata; the whole
// content is the body.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for malformed front matter.
var ErrInvalid = errors.New("frontmatter: invalid front matter")

var delimiter = []byte("---")

// Split separates the raw YAML header from the body.
// meta is nil when the document has no front matter.
func Split(content []byte) (meta, body []byte, err error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf")) // UTF-8 BOM

	if !bytes.HasPrefix(content, delimiter) {
		return nil, content, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, delimiter), "\r\n")
	if len(rest) == 0 {
		return nil, nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalid)
	}

	// Closing delimiter must start a line; an empty header closes immediately.
	var end int
	if bytes.HasPrefix(rest, delimiter) {
		end = 0
	} else {
		idx := bytes.Index(rest, append([]byte("\n"), delimiter...))
		if idx == -1 {
			return nil, nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalid)
		}
		end = idx + 1
	}

	meta = rest[:end]
	body = rest[end+len(delimiter):]

	// Drop the rest of the delimiter line.
	switch {
	case bytes.HasPrefix(body, []byte("\r\n")):
		body = body[2:]
	case bytes.HasPrefix(body, []byte("\n")):
		body = body[1:]
	}

	return meta, body, nil
}

// Parse decodes the YAML header into v and returns the body.
// v is left untouched when the document has no front matter.
func Parse(content []byte, v any) ([]byte, error) {
	meta, body, err := Split(content)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(meta)) == 0 {
		return body, nil
	}
	if err := yaml.Unmarshal(meta, v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return body, nil
}
