// Package resume holds the biographical document every page is rendered from.
package resume

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"portfolio/internal/domain/blog"
	"portfolio/internal/domain/repo"
)

var ErrInvalid = errors.New("invalid resume")

type SocialLink struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

type Contact struct {
	Email  string       `json:"email" yaml:"email"`
	Tel    string       `json:"tel" yaml:"tel"`
	Social []SocialLink `json:"social" yaml:"social"`
}

type Education struct {
	School string `json:"school" yaml:"school"`
	Degree string `json:"degree" yaml:"degree"`
	Start  string `json:"start" yaml:"start"`
	End    string `json:"end" yaml:"end"`
}

type Work struct {
	Company     string   `json:"company" yaml:"company"`
	Link        string   `json:"link" yaml:"link"`
	Badges      []string `json:"badges" yaml:"badges"`
	Title       string   `json:"title" yaml:"title"`
	Start       string   `json:"start" yaml:"start"`
	End         string   `json:"end" yaml:"end"`
	Description string   `json:"description" yaml:"description"`
}

type Link struct {
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href" yaml:"href"`
}

type Project struct {
	Title       string   `json:"title" yaml:"title"`
	TechStack   []string `json:"tech_stack" yaml:"tech_stack"`
	Description string   `json:"description" yaml:"description"`
	Link        *Link    `json:"link,omitempty" yaml:"link"`
}

type ExtraCurricular struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

type Publication struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Publisher   string   `json:"publisher" yaml:"publisher"`
	Date        string   `json:"date" yaml:"date"`
	Status      string   `json:"status" yaml:"status"`
	WebsiteURL  string   `json:"website_url" yaml:"website_url"`
	ResourceURL string   `json:"resource_url" yaml:"resource_url"`
	Citation    string   `json:"citation" yaml:"citation"`
	Tags        []string `json:"tags" yaml:"tags"`
	ShowLinks   bool     `json:"show_links" yaml:"show_links"`
}

type Achievement struct {
	Title       string   `json:"title" yaml:"title"`
	Date        string   `json:"date" yaml:"date"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	Link        *Link    `json:"link,omitempty" yaml:"link"`
}

// Bookmark is an external link shown as a preview card. Note is the author's own remark on it.
type Bookmark struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	Note  string `json:"note,omitempty" yaml:"note"`
}

type Resume struct {
	Name               string            `json:"name" yaml:"name"`
	Initials           string            `json:"initials" yaml:"initials"`
	Location           string            `json:"location" yaml:"location"`
	About              string            `json:"about" yaml:"about"`
	Summary            string            `json:"summary" yaml:"summary"`
	AvatarURL          string            `json:"avatar_url" yaml:"avatar_url"`
	PersonalWebsiteURL string            `json:"personal_website_url" yaml:"personal_website_url"`
	ResumeURL          string            `json:"resume_url" yaml:"resume_url"`
	ExtendedBio        string            `json:"-" yaml:"extended_bio"`
	Contact            Contact           `json:"contact" yaml:"contact"`
	Education          []Education       `json:"education" yaml:"education"`
	Work               []Work            `json:"work" yaml:"work"`
	Skills             []string          `json:"skills" yaml:"skills"`
	OpenSource         []repo.Repository `json:"open_source" yaml:"open_source"`
	Projects           []Project         `json:"projects" yaml:"projects"`
	ExtraCurricular    []ExtraCurricular `json:"extra_curricular" yaml:"extra_curricular"`
	Publications       []Publication     `json:"publications" yaml:"publications"`
	Achievements       []Achievement     `json:"achievements" yaml:"achievements"`
	Bookmarks          []Bookmark        `json:"bookmarks" yaml:"bookmarks"`
	Blogs              []blog.Post       `json:"-" yaml:"blogs"`
}

// Validate checks basic shape and fills derived seed fields.
func (r *Resume) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil resume", ErrInvalid)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if err := blog.ValidateSlugs(r.Blogs); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for i := range r.OpenSource {
		seed := &r.OpenSource[i]
		seed.HTMLURL = strings.TrimSpace(seed.HTMLURL)
		if seed.HTMLURL == "" {
			return fmt.Errorf("%w: open_source[%d]: html_url is required", ErrInvalid, i)
		}
		if strings.TrimSpace(seed.Name) == "" {
			seed.Name = repo.NameFromURL(seed.HTMLURL)
		}
		if seed.Topics == nil {
			seed.Topics = []string{}
		}
		seed.DataSource = repo.DataSourceStatic
	}
	for i := range r.Bookmarks {
		b := &r.Bookmarks[i]
		b.URL = strings.TrimSpace(b.URL)
		u, err := url.Parse(b.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: bookmarks[%d]: url must be an absolute http(s) url", ErrInvalid, i)
		}
		if strings.TrimSpace(b.Title) == "" {
			b.Title = u.Host
		}
	}
	return nil
}

// Seeds returns a copy of the open-source seed list.
func (r *Resume) Seeds() []repo.Repository {
	if r == nil {
		return nil
	}
	out := make([]repo.Repository, len(r.OpenSource))
	copy(out, r.OpenSource)
	return out
}
