package chat

import (
	"github.com/samber/lo"

	"batepapo/internal/model"
)

// Visible reports whether requester may read m
func Visible(m model.Message, requester string) bool {
	return m.To == model.Broadcast || m.To == requester || m.From == requester
}

// Filter keeps the messages visible to requester, then truncates to limit.
// msgs must be most recent first; limit <= 0 means no limit.
func Filter(msgs []model.Message, requester string, limit int) []model.Message {
	visible := lo.Filter(msgs, func(m model.Message, _ int) bool {
		return Visible(m, requester)
	})
	if limit > 0 && len(visible) > limit {
		visible = visible[:limit]
	}
	return visible
}
