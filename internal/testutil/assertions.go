// Package testutil provides common test utilities and assertions for plugin tests
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertMapContains asserts that a map contains all expected key-value pairs
func AssertMapContains(t *testing.T, expectedMap, actualMap map[string]interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	for key, expectedValue := range expectedMap {
		actualValue, ok := actualMap[key]
		assert.True(t, ok, "map should contain key %q", key)
		assert.Equal(t, expectedValue, actualValue, msgAndArgs...)
	}
}

// DecodeJSONObject unmarshals a JSON object, failing the test on error
func DecodeJSONObject(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out), "invalid JSON: %s", data)
	return out
}
