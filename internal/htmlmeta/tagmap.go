package htmlmeta

import "strings"

// TagMap maps lower-cased meta tag identifiers to their content values.
// Writes normalize the key, so lookups are case-insensitive and duplicate
// keys are last-write-wins.
type TagMap map[string]string

// Set stores value under the case-normalized key.
func (m TagMap) Set(key, value string) {
	m[strings.ToLower(strings.TrimSpace(key))] = value
}

// Get returns the value for the case-normalized key, or "".
func (m TagMap) Get(key string) string {
	return m[strings.ToLower(key)]
}
