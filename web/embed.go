// Package web embeds the site's templates, page copy, static assets and mail
// templates into the binary.
package web

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"sort"
)

//go:embed templates content static mail
var files embed.FS

// Templates returns the HTML layout and page templates.
func Templates() fs.FS { return sub("templates") }

// Content returns the markdown page copy.
func Content() fs.FS { return sub("content") }

// Static returns the assets served under /static/.
func Static() fs.FS { return sub("static") }

// Mail returns the email templates and their layouts.
func Mail() fs.FS { return sub("mail") }

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		// Only fails for invalid path syntax.
		panic(err)
	}
	return f
}

// AssetVersion fingerprints the static files. It changes whenever an asset
// does, so URLs carrying it can be cached as immutable.
func AssetVersion() string {
	var names []string
	_ = fs.WalkDir(files, "static", func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			names = append(names, p)
		}
		return nil
	})
	sort.Strings(names)

	h := sha256.New()
	for _, n := range names {
		b, err := fs.ReadFile(files, n)
		if err != nil {
			continue
		}
		h.Write([]byte(n))
		h.Write(b)
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}
