package event

import "strings"

var typeNames = [eventTypeCount]string{
	EventTick:           "Tick",
	EventEnemyDestroyed: "EnemyDestroyed",
	EventLaserFired:     "LaserFired",
	EventBreakout:       "Breakout",
	EventSpawnDropped:   "SpawnDropped",
	EventWarp:           "Warp",
	EventLevelStarted:   "LevelStarted",
	EventLevelCleared:   "LevelCleared",
	EventGameComplete:   "GameComplete",
	EventGameOver:       "GameOver",
}

// String returns the registered name, used as the log field value
func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "Unknown"
	}
	return typeNames[t]
}

// GetEventType returns the EventType for a name, case-insensitive
func GetEventType(name string) (EventType, bool) {
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			return EventType(i), true
		}
	}
	return 0, false
}
