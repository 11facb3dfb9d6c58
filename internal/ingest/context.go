// Package ingest implements the chunk-oriented ingestion pipeline:
// readers that stream items from external sources, processors that
// enrich them into catalog books, and a deduplicating writer that
// commits chunks together with a restart checkpoint.
package ingest

import "strconv"

// ExecutionContext is the key/value state a step carries across chunk
// boundaries. Readers restore their position from it on open and save
// their position to it before each commit. It is owned by a single
// step execution and is not safe for concurrent use.
type ExecutionContext struct {
	values map[string]string
}

// NewExecutionContext creates an empty execution context.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{values: make(map[string]string)}
}

// RestoreExecutionContext creates an execution context from a saved
// checkpoint snapshot.
func RestoreExecutionContext(snapshot map[string]string) *ExecutionContext {
	values := make(map[string]string, len(snapshot))
	for k, v := range snapshot {
		values[k] = v
	}
	return &ExecutionContext{values: values}
}

// Get returns the value for key and whether it was present.
func (ec *ExecutionContext) Get(key string) (string, bool) {
	v, ok := ec.values[key]
	return v, ok
}

// GetInt returns the integer value for key, or def when the key is
// absent or not an integer.
func (ec *ExecutionContext) GetInt(key string, def int) int {
	v, ok := ec.values[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetInt64 returns the int64 value for key, or def when the key is
// absent or not an integer.
func (ec *ExecutionContext) GetInt64(key string, def int64) int64 {
	v, ok := ec.values[key]
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// Put stores a value.
func (ec *ExecutionContext) Put(key, value string) {
	ec.values[key] = value
}

// PutInt stores an integer value.
func (ec *ExecutionContext) PutInt(key string, value int) {
	ec.values[key] = strconv.Itoa(value)
}

// PutInt64 stores an int64 value.
func (ec *ExecutionContext) PutInt64(key string, value int64) {
	ec.values[key] = strconv.FormatInt(value, 10)
}

// Remove deletes a key.
func (ec *ExecutionContext) Remove(key string) {
	delete(ec.values, key)
}

// Snapshot returns a copy of the current state for persistence.
func (ec *ExecutionContext) Snapshot() map[string]string {
	snapshot := make(map[string]string, len(ec.values))
	for k, v := range ec.values {
		snapshot[k] = v
	}
	return snapshot
}
