package usecase

import (
	"fmt"
	"strings"
	"sync"

	"portfolio/internal/domain/resume"
)

type ProfileUsecase interface {
	Profile() *resume.Resume
	BioHTML() (string, error)
	HomeMeta() PageMeta
	Bookmarks() []resume.Bookmark
	BookmarksMeta() PageMeta
}

type Profile struct {
	resume   *resume.Resume
	siteURL  string
	renderer MarkdownRenderer

	bioOnce sync.Once
	bioHTML string
	bioErr  error
}

func NewProfileUsecase(r *resume.Resume, siteURL string, renderer MarkdownRenderer) *Profile {
	return &Profile{resume: r, siteURL: strings.TrimRight(strings.TrimSpace(siteURL), "/"), renderer: renderer}
}

func (u *Profile) Profile() *resume.Resume {
	return u.resume
}

// BioHTML renders the extended bio once; the resume is immutable after load.
func (u *Profile) BioHTML() (string, error) {
	u.bioOnce.Do(func() {
		if u.resume == nil || strings.TrimSpace(u.resume.ExtendedBio) == "" {
			return
		}
		if u.renderer == nil {
			u.bioErr = fmt.Errorf("no markdown renderer configured")
			return
		}
		u.bioHTML, u.bioErr = u.renderer.Render(u.resume.ExtendedBio)
	})
	return u.bioHTML, u.bioErr
}

func (u *Profile) HomeMeta() PageMeta {
	name := ""
	desc := ""
	avatar := ""
	if u.resume != nil {
		name = u.resume.Name
		desc = strings.TrimSpace(u.resume.Summary)
		if desc == "" {
			desc = strings.TrimSpace(u.resume.About)
		}
		avatar = u.resume.AvatarURL
	}
	image := u.siteURL + "/og-image.png"
	if u.siteURL == "" && avatar != "" {
		image = avatar
	}
	return PageMeta{
		Title:       name,
		Description: desc,
		Canonical:   u.siteURL + "/",
		OGTitle:     name,
		OGImage:     image,
		OGType:      "profile",
		SiteName:    name,
		Author:      name,
		Keywords:    append([]string{name}, u.skills()...),
	}
}

func (u *Profile) Bookmarks() []resume.Bookmark {
	if u.resume == nil {
		return nil
	}
	return u.resume.Bookmarks
}

func (u *Profile) BookmarksMeta() PageMeta {
	m := u.HomeMeta()
	m.Title = fmt.Sprintf("Links | %s", m.Author)
	m.Description = fmt.Sprintf("Pages and projects %s recommends.", m.Author)
	m.Canonical = u.siteURL + "/links"
	m.OGTitle = m.Title
	m.OGType = "website"
	return m
}

func (u *Profile) skills() []string {
	if u.resume == nil {
		return nil
	}
	return u.resume.Skills
}
