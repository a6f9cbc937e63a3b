package repo

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
)

const (
	DataSourceAPI    = "api"
	DataSourceStatic = "static"
)

type Owner struct {
	Login     string `json:"login" yaml:"login"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url"`
}

// Repository mirrors the subset of the GitHub repository payload the site displays.
type Repository struct {
	ID              int64    `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	HTMLURL         string   `json:"html_url" yaml:"html_url"`
	Description     *string  `json:"description" yaml:"description"`
	StargazersCount int      `json:"stargazers_count" yaml:"stargazers_count"`
	ForksCount      int      `json:"forks_count" yaml:"forks_count"`
	Topics          []string `json:"topics" yaml:"topics"`
	Language        *string  `json:"language" yaml:"language"`
	Featured        bool     `json:"featured,omitempty" yaml:"featured"`
	Highlight       bool     `json:"highlight,omitempty" yaml:"highlight"`
	DataSource      string   `json:"data_source,omitempty" yaml:"-"`
	Owner           *Owner   `json:"owner,omitempty" yaml:"owner"`
}

// Highlighted reports whether the card gets the gradient border.
func (r Repository) Highlighted() bool {
	return r.Highlight || strings.Contains(strings.ToLower(r.Name), "cerberus")
}

func TotalStars(repos []Repository) int {
	total := 0
	for _, r := range repos {
		if r.StargazersCount > 0 {
			total += r.StargazersCount
		}
	}
	return total
}

// FormatStarCount renders counts of 1000 and above as thousands with one decimal, e.g. 1200 -> "1.2k".
func FormatStarCount(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fk", float64(count)/1000)
	}
	return fmt.Sprintf("%d", count)
}

// SortByStars returns a copy sorted by star count, highest first. Ties keep their input order.
func SortByStars(repos []Repository) []Repository {
	out := make([]Repository, len(repos))
	copy(out, repos)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StargazersCount > out[j].StargazersCount
	})
	return out
}

// APIURL maps https://github.com/<owner>/<name> onto <apiBase>/repos/<owner>/<name>.
func APIURL(htmlURL, apiBase string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(htmlURL))
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(u.Host, "github.com") && !strings.EqualFold(u.Host, "www.github.com") {
		return "", fmt.Errorf("not a github repository url: %s", htmlURL)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("not a github repository url: %s", htmlURL)
	}
	return strings.TrimRight(apiBase, "/") + "/repos/" + parts[0] + "/" + parts[1], nil
}

func NameFromURL(htmlURL string) string {
	u, err := url.Parse(strings.TrimSpace(htmlURL))
	if err != nil {
		return ""
	}
	p := strings.Trim(u.Path, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// Merge overlays fresh API data onto a static seed. Empty fresh text fields keep the seed value.
func Merge(seed, fresh Repository) Repository {
	out := seed
	out.ID = fresh.ID
	out.StargazersCount = fresh.StargazersCount
	out.ForksCount = fresh.ForksCount
	if fresh.Language != nil && strings.TrimSpace(*fresh.Language) != "" {
		out.Language = fresh.Language
	}
	if fresh.Description != nil && strings.TrimSpace(*fresh.Description) != "" {
		out.Description = fresh.Description
	}
	if len(out.Topics) == 0 && len(fresh.Topics) > 0 {
		out.Topics = fresh.Topics
	}
	if fresh.Owner != nil {
		out.Owner = fresh.Owner
	}
	if strings.TrimSpace(out.Name) == "" {
		out.Name = fresh.Name
	}
	out.DataSource = DataSourceAPI
	return out
}
