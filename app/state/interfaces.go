// Package state persists the watermark: the highest item ID ever
// confirmed recorded for the watched account. The monitor is the only
// component that reads or writes it, once per cycle each.
package state

// Store is the persisted watermark. Load returns an empty string when no
// watermark has ever been recorded (first run). Save is called at most
// once per cycle, and only with a strictly newer ID.
//
// No backend provides locking: two process instances sharing one store
// can race on the watermark. One instance at a time is assumed.
type Store interface {
	Load() (string, error)
	Save(id string) error
}
