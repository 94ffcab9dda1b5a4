package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDefinitions_BundledExamples_SortedWithModes(t *testing.T) {
	entries, err := listDefinitions(bundledDir)
	require.NoError(t, err)
	require.Len(t, entries, 7)

	assert.Equal(t, "afd_termina_en_a.json", entries[0].Name)
	assert.Equal(t, "AFD", entries[0].Mode)
	assert.Equal(t, "gramatica_regular.yaml", entries[5].Name)
	assert.Equal(t, "GRAMATICA_REGULAR", entries[5].Mode)
	for _, e := range entries {
		assert.NoError(t, e.Err, e.Name)
	}
}

func TestListDefinitions_SkipsOtherFilesAndKeepsBrokenOnes(t *testing.T) {
	// GIVEN a directory with a broken definition and an unrelated file
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "not a definition")
	writeFile(t, dir, "broken.json", "{")
	writeFile(t, dir, "ok.yml", "modo: GLC\nproducciones:\n  S: [a]\nentrada: a\n")

	// WHEN the directory is listed
	entries, err := listDefinitions(dir)

	// THEN only definitions appear and the broken one carries its error
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "broken.json", entries[0].Name)
	assert.Error(t, entries[0].Err)
	assert.Equal(t, "GLC", entries[1].Mode)

	var buf bytes.Buffer
	writeList(&buf, entries)
	assert.Contains(t, buf.String(), " 1. broken.json")
	assert.Contains(t, buf.String(), "unreadable")
	assert.Contains(t, buf.String(), " 2. ok.yml")
}

func TestListDefinitions_MissingDir_Errors(t *testing.T) {
	_, err := listDefinitions("does-not-exist")
	assert.ErrorContains(t, err, "reading definitions directory")
}
