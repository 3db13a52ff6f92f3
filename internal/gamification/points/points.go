// Package points maps user actions to fixed eco-point values.
package points

import "expiryguard/internal/model"

// Values is the closed action-to-points table.
var Values = map[model.ActionKind]int{
	model.ActionMarkUsedBeforeExpiry: 10,
	model.ActionAddProduct:           5,
	model.ActionUseOnReminderDay:     20,
	model.ActionSevenDayStreak:       50,
	model.ActionPerfectWeek:          100,
}

// ForAction returns the point value for an action. An action kind outside
// the table yields 0 rather than an error; callers treat a zero award as a
// valid steady state.
func ForAction(action model.ActionKind) int {
	return Values[action]
}
