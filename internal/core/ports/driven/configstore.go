package driven

// ConfigStore reads and writes persisted configuration. Keys use dot
// notation ("llm.model"); typed getters return the zero value when the
// key is unset or holds a different type, so callers layer their own
// defaults on top.
type ConfigStore interface {
	// Get returns the raw value at key and whether it is set.
	Get(key string) (any, bool)

	// GetString returns a string value, or "".
	GetString(key string) string

	// GetInt returns an integer value, or 0.
	GetInt(key string) int

	// GetFloat returns a numeric value, or 0. Integers widen.
	GetFloat(key string) float64

	// GetBool returns a boolean value, or false.
	GetBool(key string) bool

	// GetStringSlice returns a string list value, or nil.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current state.
	Save() error

	// Load rereads persisted state, replacing in-memory values.
	Load() error

	// Path names the backing file, for display to the user.
	Path() string
}
