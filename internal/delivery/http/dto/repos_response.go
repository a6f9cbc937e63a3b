package dto

import (
	"time"

	"portfolio/internal/domain/repo"
	"portfolio/internal/usecase"
)

type ReposResponse struct {
	Repositories      []repo.Repository `json:"repositories"`
	TotalStars        int               `json:"total_stars"`
	TotalStarsDisplay string            `json:"total_stars_display"`
	Source            string            `json:"source"`
	FetchedAt         *string           `json:"fetched_at"`
}

func NewReposResponse(r usecase.ReposResult) ReposResponse {
	repos := r.Repositories
	if repos == nil {
		repos = []repo.Repository{}
	}
	var fetched *string
	if r.FetchedAt != nil && !r.FetchedAt.IsZero() {
		s := r.FetchedAt.UTC().Format(time.RFC3339)
		fetched = &s
	}
	return ReposResponse{
		Repositories:      repos,
		TotalStars:        r.TotalStars,
		TotalStarsDisplay: r.TotalStarsDisplay,
		Source:            r.Source,
		FetchedAt:         fetched,
	}
}
