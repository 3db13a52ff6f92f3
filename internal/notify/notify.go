// Package notify renders progression events as user-facing notifications.
package notify

import (
	"fmt"

	"github.com/rs/zerolog"

	"expiryguard/internal/model"
)

// Preferences controls which cues accompany a notification. It is derived
// from the user's settings per call; the notifier itself holds no per-user
// state.
type Preferences struct {
	Sound      bool
	Animations bool
	Voice      bool
}

// PreferencesFrom extracts notification preferences from user settings.
func PreferencesFrom(settings model.UserSettings) Preferences {
	return Preferences{
		Sound:      settings.SoundEnabled,
		Animations: settings.AnimationsEnabled,
		Voice:      settings.Voice.Enabled,
	}
}

// Notifier turns progression events into notification messages. The
// current delivery target is the structured log; a push or websocket
// delivery slots in behind the same call.
type Notifier struct {
	logger zerolog.Logger
}

// NewNotifier creates a Notifier writing to the given logger.
func NewNotifier(logger zerolog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Publish delivers one notification per event, in the order the engine
// emitted them. Disabled notifications drop everything.
func (n *Notifier) Publish(userID string, events []model.Event, settings model.UserSettings) {
	if !settings.Notifications {
		return
	}

	prefs := PreferencesFrom(settings)
	for _, e := range events {
		n.logger.Info().
			Str("user_id", userID).
			Str("kind", string(e.Kind)).
			Bool("sound", prefs.Sound).
			Bool("animations", prefs.Animations).
			Msg(Message(e))
	}
}

// Message renders the display text for one event.
func Message(e model.Event) string {
	switch e.Kind {
	case model.EventPoints:
		if e.Points == 0 {
			return "No points this time"
		}
		return fmt.Sprintf("+%d eco-points", e.Points)
	case model.EventLevelUp:
		if e.Level == nil {
			return "Level up!"
		}
		return fmt.Sprintf("%s Level %d reached: %s", e.Level.Icon, e.Level.Number, e.Level.Title)
	case model.EventBadge:
		if e.Achievement == nil {
			return "Achievement unlocked!"
		}
		return fmt.Sprintf("%s Achievement unlocked: %s", e.Achievement.Icon, e.Achievement.Name)
	default:
		return string(e.Kind)
	}
}
