package component

// EntrySpec describes the effects to trigger when the character enters a
// watched node. Compiled from an authored config; immutable afterwards.
// All delays and deadlines are in seconds. Empty Effect or Sound handles
// mean that branch is not configured.
type EntrySpec struct {
	Node     NodeID
	NodeName string

	Effect     string
	SpawnDelay float64
	// AbortDeadline is the window after node entry during which leaving
	// the node still cancels the spawned effect. 0 means never abort.
	AbortDeadline float64

	Sound      string
	SoundDelay float64
	Volume     float64
	Loop       bool

	ShakeDelay     float64
	ShakeDuration  float64
	ShakeFrequency float64
	ShakeAmplitude float64
}

// ExitSpec describes the parting effects to trigger when the character
// exits a watched node. Exit effects are unconditional once launched.
type ExitSpec struct {
	Node     NodeID
	NodeName string

	Effect     string
	SpawnDelay float64

	Sound      string
	SoundDelay float64
	Volume     float64
}
