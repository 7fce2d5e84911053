package core

// EventKind identifies a gameplay notification.
type EventKind int

const (
	EventSlice EventKind = iota
	EventPowerUp
	EventPowerUpExpired
	EventShieldProtected
	EventLifeLost
	EventLevelUp
	EventAchievement
	EventBossPhase
	EventBossHit
	EventBossDefeated
	EventGameOver
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventSlice:
		return "slice"
	case EventPowerUp:
		return "powerup"
	case EventPowerUpExpired:
		return "powerup_expired"
	case EventShieldProtected:
		return "shield_protected"
	case EventLifeLost:
		return "life_lost"
	case EventLevelUp:
		return "level_up"
	case EventAchievement:
		return "achievement"
	case EventBossPhase:
		return "boss_phase"
	case EventBossHit:
		return "boss_hit"
	case EventBossDefeated:
		return "boss_defeated"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget notification emitted by a game.
// Label carries the kind-specific detail (object kind, power-up, achievement id).
type Event struct {
	Kind  EventKind
	Label string
	X, Y  float64
}
