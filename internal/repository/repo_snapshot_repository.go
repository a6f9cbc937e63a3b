package repository

import (
	"context"
	"strings"
	"time"

	"portfolio/internal/database"
	"portfolio/internal/domain/repo"
)

// RepoSnapshot is the last successfully fetched state of one repository.
type RepoSnapshot struct {
	Repository repo.Repository
	FetchedAt  time.Time
}

type RepoSnapshotRepository interface {
	UpsertSnapshots(ctx context.Context, repos []repo.Repository, fetchedAt time.Time) (int, error)
	ListSnapshots(ctx context.Context) ([]RepoSnapshot, error)
}

type PostgresRepoSnapshotRepository struct {
	db database.DB
}

func NewPostgresRepoSnapshotRepository(db database.DB) *PostgresRepoSnapshotRepository {
	return &PostgresRepoSnapshotRepository{db: db}
}

// UpsertSnapshots stores API-sourced repositories only; static seed values are never persisted.
func (r *PostgresRepoSnapshotRepository) UpsertSnapshots(ctx context.Context, repos []repo.Repository, fetchedAt time.Time) (int, error) {
	written := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, rp := range repos {
			if rp.DataSource != repo.DataSourceAPI || strings.TrimSpace(rp.HTMLURL) == "" {
				continue
			}
			topics := rp.Topics
			if topics == nil {
				topics = []string{}
			}
			var ownerLogin, ownerAvatar *string
			if rp.Owner != nil {
				ownerLogin, ownerAvatar = &rp.Owner.Login, &rp.Owner.AvatarURL
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO repo_snapshots (
					html_url, repo_id, name, description, stargazers_count, forks_count,
					language, topics, owner_login, owner_avatar_url, fetched_at
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
				ON CONFLICT (html_url) DO UPDATE SET
					repo_id = EXCLUDED.repo_id,
					name = EXCLUDED.name,
					description = EXCLUDED.description,
					stargazers_count = EXCLUDED.stargazers_count,
					forks_count = EXCLUDED.forks_count,
					language = EXCLUDED.language,
					topics = EXCLUDED.topics,
					owner_login = EXCLUDED.owner_login,
					owner_avatar_url = EXCLUDED.owner_avatar_url,
					fetched_at = EXCLUDED.fetched_at`,
				rp.HTMLURL, rp.ID, rp.Name, rp.Description, rp.StargazersCount, rp.ForksCount,
				rp.Language, topics, ownerLogin, ownerAvatar, fetchedAt.UTC(),
			)
			if err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (r *PostgresRepoSnapshotRepository) ListSnapshots(ctx context.Context) ([]RepoSnapshot, error) {
	rows, err := r.db.Query(ctx, `SELECT html_url, repo_id, name, description, stargazers_count, forks_count,
		language, topics, owner_login, owner_avatar_url, fetched_at
		FROM repo_snapshots ORDER BY stargazers_count DESC, html_url ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RepoSnapshot, 0)
	for rows.Next() {
		var s RepoSnapshot
		var ownerLogin, ownerAvatar *string
		rp := &s.Repository
		if err := rows.Scan(
			&rp.HTMLURL, &rp.ID, &rp.Name, &rp.Description, &rp.StargazersCount, &rp.ForksCount,
			&rp.Language, &rp.Topics, &ownerLogin, &ownerAvatar, &s.FetchedAt,
		); err != nil {
			return nil, err
		}
		if ownerLogin != nil && *ownerLogin != "" {
			rp.Owner = &repo.Owner{Login: *ownerLogin}
			if ownerAvatar != nil {
				rp.Owner.AvatarURL = *ownerAvatar
			}
		}
		rp.DataSource = repo.DataSourceAPI
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
