package local_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ghscrunch/internal/infrastructure/storage/local"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

func TestSink_Write(t *testing.T) {
	dir := t.TempDir()
	sink := local.NewSink(dir, nil)

	tbl := table.New("nz", "sublists", "Source code", "Source classification", "Translated classification")
	tbl.Append("6.1A (oral)", "6.1A (oral) - Acutely toxic: oral, cat A", "GHS: Acute toxicity: Oral - Category 1")

	require.NoError(t, sink.Write(context.Background(), tbl))

	path := filepath.Join(dir, "nz", "sublists.csv")
	assert.Equal(t, path, sink.Path(tbl))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Source code,Source classification,Translated classification\n"+
		"6.1A (oral),\"6.1A (oral) - Acutely toxic: oral, cat A\",GHS: Acute toxicity: Oral - Category 1\n", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "nz"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestSink_Overwrites(t *testing.T) {
	dir := t.TempDir()
	sink := local.NewSink(dir, nil)

	first := table.New("jp", "index", "Identifier", "Name")
	first.Append("50-00-0", "Formaldehyde")
	require.NoError(t, sink.Write(context.Background(), first))

	second := table.New("jp", "index", "Identifier", "Name")
	require.NoError(t, sink.Write(context.Background(), second))

	data, err := os.ReadFile(sink.Path(second))
	require.NoError(t, err)
	assert.Equal(t, "Identifier,Name\n", string(data))
}

func TestSink_Errors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "jp")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	sink := local.NewSink(dir, nil)
	err := sink.Write(context.Background(), table.New("jp", "index", "Identifier"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeSinkWrite))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sink.Write(ctx, table.New("kr", "hazards")), context.Canceled)
	assert.Equal(t, "csv", sink.Name())
	assert.NoError(t, sink.Close())
}
