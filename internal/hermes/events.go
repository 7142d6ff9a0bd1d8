package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
)

type RuleEvaluatedEvent struct {
	RuleID        string               `json:"rule_id"`
	Kind          scoring.RuleKind     `json:"kind"`
	OrderDetailID string               `json:"order_detail_id"`
	ItemID        string               `json:"item_id"`
	Candidates    int                  `json:"candidates"`
	Fallback      bool                 `json:"fallback"`
	Entries       []scoring.ScoreEntry `json:"entries"`
	Range         *scoring.OrderRange  `json:"range,omitempty"`
	Timestamp     time.Time            `json:"timestamp"`
}

type RuleFailedEvent struct {
	RuleID        string           `json:"rule_id"`
	Kind          scoring.RuleKind `json:"kind"`
	OrderDetailID string           `json:"order_detail_id"`
	ItemID        string           `json:"item_id"`
	Error         string           `json:"error"`
	Messages      []string         `json:"messages,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

type RuleChangedEvent struct {
	RuleID string `json:"rule_id"`
	Name   string `json:"name,omitempty"`
}

type LocationUpdatedEvent struct {
	LocationID int64 `json:"location_id"`
}
