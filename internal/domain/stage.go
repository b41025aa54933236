package domain

import "time"

// The tracker shows simulated production progress derived from wall-clock
// time, not from real kitchen events. It is a display heuristic only; the
// authoritative order state is Order.Status.
const (
	StageCount    = 11
	StageInterval = 2 * time.Minute
)

var stageLabels = [StageCount]string{
	"Order Placed",
	"Design Approved",
	"Ingredients Prepped",
	"Baking",
	"Cooling",
	"Filling & Stacking",
	"Crumb Coat",
	"Decorating",
	"Final Inspection",
	"Ready for Pickup",
	"Picked Up",
}

// ResolveStage maps elapsed time since order creation to a stage index in
// [0, StageCount). One stage per interval, wrapping after a full cycle.
// Clock skew (now before createdAt) clamps to stage 0.
func ResolveStage(createdAt, now time.Time) int {
	if now.Before(createdAt) {
		return 0
	}
	elapsed := int(now.Sub(createdAt) / time.Minute)
	return (elapsed / int(StageInterval/time.Minute)) % StageCount
}

// StageLabel returns the display label for a stage index. Out-of-range
// indexes fall back to the first stage.
func StageLabel(stage int) string {
	if stage < 0 || stage >= StageCount {
		return stageLabels[0]
	}
	return stageLabels[stage]
}
