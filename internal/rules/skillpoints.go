// Package rules decides whether a build can be worn by a character of a
// given level and class.
package rules

import (
	"github.com/KirkDiggler/rpg-build-optimizer/internal/entities/equipment"
)

const (
	// MaxManualPerSkill caps the points a player may assign to one axis
	MaxManualPerSkill = 100

	// maxBudgetLevel is the level beyond which no more points are granted
	maxBudgetLevel = 101
)

// LevelToSP returns the assignable skill point budget for a level.
// Levels are clamped to [1, 101] first.
func LevelToSP(level int) int {
	return (min(max(level, 1), maxBudgetLevel) - 1) * 2
}

// Requirements returns the per-axis maximum requirement across occupied slots
func Requirements(b equipment.Build) equipment.StatVector {
	var req equipment.StatVector
	for _, item := range b.Items() {
		req = req.Max(item.Requirements)
	}
	return req
}

// Bonuses returns the per-axis sum of bonuses across occupied slots
func Bonuses(b equipment.Build) equipment.StatVector {
	var bonus equipment.StatVector
	for _, item := range b.Items() {
		bonus = bonus.Add(item.Bonuses)
	}
	return bonus
}

// ManualAllocation returns the points that must be assigned by hand when
// equip order is ignored: max(requirement - bonus, 0) per axis.
func ManualAllocation(b equipment.Build) equipment.StatVector {
	req := Requirements(b)
	bonus := Bonuses(b)

	var manual equipment.StatVector
	for d := range manual {
		manual[d] = max(req[d]-bonus[d], 0)
	}
	return manual
}

// FinalSkillPoints returns manual allocation plus bonuses per axis. This is
// the order-naive figure used for scoring.
func FinalSkillPoints(b equipment.Build) equipment.StatVector {
	return ManualAllocation(b).Add(Bonuses(b))
}

// fastReason runs the order-naive budget check
func fastReason(b equipment.Build, level int) Reason {
	manual := ManualAllocation(b)
	for _, m := range manual {
		if m > MaxManualPerSkill {
			return ReasonSkillCap
		}
	}
	if manual.Sum() > LevelToSP(level) {
		return ReasonSkillBudget
	}
	return ReasonNone
}

// FastCheck reports whether the order-naive manual allocation fits: no axis
// above 100 and the total within the level's budget. Passing is necessary
// but not sufficient for the build to be wearable.
func FastCheck(b equipment.Build, level int) bool {
	return fastReason(b, level) == ReasonNone
}
