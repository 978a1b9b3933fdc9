// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package playersup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefaultKeyBindings_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, "nested")

	err := WriteDefaultKeyBindings(configDir, DefaultKeyBindings())
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(configDir, "input.conf"))
	require.NoError(t, err)
	assert.Contains(t, string(contents), "Shift+N script-message jmsr-next")
	assert.Contains(t, string(contents), "Shift+P script-message jmsr-prev")
}

func TestWriteDefaultKeyBindings_DoesNotOverwriteExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.conf")
	require.NoError(t, os.WriteFile(path, []byte("# user customized\n"), 0o644))

	require.NoError(t, WriteDefaultKeyBindings(dir, DefaultKeyBindings()))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# user customized\n", string(contents))
}
