package cache

import "strings"

const (
	GlobalKeyPrefix = "aibubu"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// PlaybackSessionKey builds the key a player's transient playback session is
// stored under for one tutorial.
func PlaybackSessionKey(playerID, tutorialID string) string {
	return strings.Join([]string{GlobalKeyPrefix, "playback", "session", playerID, tutorialID}, ":")
}
