package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventRecommendationsUpdated = "recommendations_updated"

type RecommendationsUpdatedEvent struct {
	Type      string `json:"type"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

// NotifyRecommendationsUpdated tells the user's open connections that their
// stored recommendations changed.
func (h *Hub) NotifyRecommendationsUpdated(userID uuid.UUID, count int) {
	if h == nil {
		return
	}
	b, err := json.Marshal(RecommendationsUpdatedEvent{
		Type:      EventRecommendationsUpdated,
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.SendToUser(userID, b)
}
