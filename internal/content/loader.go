// Package content loads the resume document and blog Markdown files from disk.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"portfolio/internal/domain/blog"
	"portfolio/internal/domain/resume"

	"gopkg.in/yaml.v3"
)

const (
	ResumeFile = "resume.yaml"
	BlogDir    = "blog"

	maxMarkdownBytes = 2 << 20
)

// LoadResume decodes <dir>/resume.yaml strictly and validates it.
func LoadResume(dir string) (*resume.Resume, error) {
	path := filepath.Join(dir, ResumeFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseResume(b)
}

func ParseResume(b []byte) (*resume.Resume, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	var r resume.Resume
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// MarkdownStore resolves blog content by slug to <dir>/blog/<slug>.md.
type MarkdownStore struct {
	dir string
}

func NewMarkdownStore(contentDir string) *MarkdownStore {
	return &MarkdownStore{dir: filepath.Join(contentDir, BlogDir)}
}

// Load returns the raw Markdown for slug. A missing file yields found=false and no error.
func (s *MarkdownStore) Load(slug string) (content string, found bool, err error) {
	if s == nil {
		return "", false, errors.New("nil markdown store")
	}
	if !blog.ValidSlug(slug) {
		return "", false, nil
	}
	path := filepath.Join(s.dir, slug+".md")

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, maxMarkdownBytes+1))
	if err != nil {
		return "", false, err
	}
	if len(b) > maxMarkdownBytes {
		return "", false, fmt.Errorf("markdown file too large: %s", path)
	}
	return string(b), true, nil
}
