package store

// StateKey is the single durable-store entry holding the whole AppState.
const StateKey = "daytrack/state"

// KV is the opaque durable store contract: string-keyed entries, full
// overwrite on every write. Get reports presence via the bool so a
// missing key is not an error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}
