package event

// EventType represents the type of game event
type EventType int

const (
	// EventTick is reserved for automatic FSM transitions and is never queued
	EventTick EventType = iota

	// === Combat Event ===

	// EventEnemyDestroyed signals an enemy left the simulation
	// Trigger: laser hit, collision, despawn, lifetime expiry
	// Consumer: AudioPlayer, log | Payload: *EnemyDestroyedPayload
	EventEnemyDestroyed

	// EventLaserFired signals a player shot
	// Trigger: Fire input while a level is active
	// Consumer: AudioPlayer | Payload: nil
	EventLaserFired

	// EventBreakout signals a formation enemy entered free flight
	// Trigger: scripted breakout scheduler, debug input
	// Consumer: log | Payload: *BreakoutPayload
	EventBreakout

	// EventSpawnDropped signals a spawn rejected because the roster is full
	// Consumer: log, metrics | Payload: *SpawnDroppedPayload
	EventSpawnDropped

	// === Player Event ===

	// EventWarp signals the player ship wrapped around a screen edge
	// Consumer: AudioPlayer | Payload: nil
	EventWarp

	// === Level Event ===

	// EventLevelStarted signals a level finished building
	// Trigger: PrepareFirstLevel, AdvanceToNextLevel
	// Consumer: LevelController FSM, AudioPlayer | Payload: *LevelPayload
	EventLevelStarted

	// EventLevelCleared signals the clear condition held
	// Consumer: AudioPlayer, log | Payload: *LevelPayload
	EventLevelCleared

	// EventGameComplete signals the last level was cleared
	// Consumer: LevelController FSM, AudioPlayer | Payload: nil
	EventGameComplete

	// EventGameOver signals the player ship was destroyed
	// Consumer: LevelController FSM, AudioPlayer | Payload: nil
	EventGameOver

	eventTypeCount
)

// GameEvent is a single queued event
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
