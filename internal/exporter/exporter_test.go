package exporter_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/manifest-network/adacoin/internal/exporter"
	"github.com/manifest-network/adacoin/internal/ledger"
	"github.com/manifest-network/adacoin/internal/output"
)

func journalDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	h, err := output.NewJSONOutputHandler(dir)
	require.NoError(t, err)

	yesterday := ledger.FormatDate(time.Now().AddDate(0, 0, -1))
	c := ledger.NewChain(ledger.WithSink(output.NewJournal(context.Background(), h, 0)))
	require.NoError(t, c.AddBlock(ledger.NewBlock(yesterday, ledger.NewCredit("A0001", "25.50"))))
	require.Error(t, c.AddBlock(ledger.NewBlock(yesterday, ledger.NewDebit("A0002", "6.999"))))
	c.Balance()
	require.NoError(t, h.Close())

	// Stray files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events", "notes.txt"), []byte("x"), 0o644))
	return dir
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestExportEventsTSV(t *testing.T) {
	in := journalDir(t)
	out := filepath.Join(t.TempDir(), "events.tsv")
	require.NoError(t, exporter.ExportEventsTSV(in, out))

	lines := readLines(t, out)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "1\tblock_created\t{"))
	assert.True(t, strings.HasPrefix(lines[1], "2\tblock_rejected\t{"))
	assert.True(t, strings.HasPrefix(lines[2], "3\tbalance_computed\t{"))
	assert.Contains(t, lines[2], `"balance":"£25.50"`)
}

func TestExportRejectionsTSV(t *testing.T) {
	in := journalDir(t)
	out := filepath.Join(t.TempDir(), "rejections.tsv")
	require.NoError(t, exporter.ExportRejectionsTSV(in, out))

	lines := readLines(t, out)
	require.Len(t, lines, 1)
	fields := strings.Split(lines[0], "\t")
	require.Len(t, fields, 6)
	assert.Equal(t, "2", fields[0])
	assert.Equal(t, "A0002", fields[2])
	assert.Equal(t, "T03", fields[3])
	assert.Equal(t, "6.999", fields[5])
}

func TestExportMissingJournal(t *testing.T) {
	err := exporter.ExportEventsTSV(t.TempDir(), filepath.Join(t.TempDir(), "events.tsv"))
	assert.ErrorContains(t, err, "failed to read events directory")
}

func TestExportRejectionsXLSX(t *testing.T) {
	in := journalDir(t)
	out := filepath.Join(t.TempDir(), "rejections.xlsx")
	require.NoError(t, exporter.ExportRejectionsXLSX(in, out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Rejections"}, f.GetSheetList())
	rows, err := f.GetRows("Rejections")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Seq", "Date", "TID", "Kind", "Message", "Value"}, rows[0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "A0002", rows[1][2])
	assert.Equal(t, "T03", rows[1][3])
	assert.Equal(t, "6.999", rows[1][5])
}
