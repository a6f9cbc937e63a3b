package ws

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const EventReposUpdated = "repos_updated"

type ReposUpdatedEvent struct {
	Type              string `json:"type"`
	TotalStars        int    `json:"total_stars"`
	TotalStarsDisplay string `json:"total_stars_display"`
	Source            string `json:"source"`
	Timestamp         string `json:"timestamp"`
}

// NotifyReposUpdated tells every subscriber that fresh star counts are available.
func (h *Hub) NotifyReposUpdated(totalStars int, display, source string) {
	if h == nil {
		return
	}
	evt := ReposUpdatedEvent{
		Type:              EventReposUpdated,
		TotalStars:        totalStars,
		TotalStarsDisplay: display,
		Source:            source,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("marshal event", zap.Error(err))
		return
	}
	h.Broadcast(b)
}
