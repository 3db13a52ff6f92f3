// Package level maps eco-point totals to the fixed five-tier level table.
package level

import "expiryguard/internal/model"

// Levels is the static level table. Ranges are contiguous, non-overlapping
// and cover [0, Unbounded); the table is fixed configuration, not
// user-editable.
var Levels = []model.Level{
	{Number: 1, Title: "Waste Rookie", MinPoints: 0, MaxPoints: 99, Color: "#9CA3AF", Icon: "🌱"},
	{Number: 2, Title: "Smart Saver", MinPoints: 100, MaxPoints: 499, Color: "#60A5FA", Icon: "💡"},
	{Number: 3, Title: "Waste Warrior", MinPoints: 500, MaxPoints: 1499, Color: "#34D399", Icon: "⚔️"},
	{Number: 4, Title: "Expiry Master", MinPoints: 1500, MaxPoints: 2999, Color: "#F59E0B", Icon: "👑"},
	{Number: 5, Title: "Eco Legend", MinPoints: 3000, MaxPoints: model.Unbounded, Color: "#8B5CF6", Icon: "🏆"},
}

// ForPoints returns the unique level whose range contains points.
// The ranges partition the non-negative integers, so the fallback to the
// lowest level is a defensive guard, not a designed state.
func ForPoints(points int) model.Level {
	for _, l := range Levels {
		if points >= l.MinPoints && points <= l.MaxPoints {
			return l
		}
	}
	return Levels[0]
}

// Next returns the level after current, or false if current is the top level.
func Next(current model.Level) (model.Level, bool) {
	for i, l := range Levels {
		if l.Number == current.Number {
			if i == len(Levels)-1 {
				return model.Level{}, false
			}
			return Levels[i+1], true
		}
	}
	return model.Level{}, false
}

// ProgressToNext returns the percentage [0,100] of the way from the current
// level's threshold to the next level's threshold. At the top level the
// progress is always 100.
func ProgressToNext(points int) float64 {
	current := ForPoints(points)
	next, ok := Next(current)
	if !ok {
		return 100
	}

	span := next.MinPoints - current.MinPoints
	progress := float64(points-current.MinPoints) / float64(span) * 100

	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// PointsToNext returns how many points are still needed to reach the next
// level, or 0 at the top level.
func PointsToNext(points int) int {
	current := ForPoints(points)
	next, ok := Next(current)
	if !ok {
		return 0
	}
	return next.MinPoints - points
}

// ByNumber returns the level with the given number.
func ByNumber(number int) (model.Level, bool) {
	for _, l := range Levels {
		if l.Number == number {
			return l, true
		}
	}
	return model.Level{}, false
}
