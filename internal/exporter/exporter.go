package exporter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifest-network/adacoin/internal/ledger"
)

// journalEntry is one event file of a JSON journal.
type journalEntry struct {
	seq   uint64
	event ledger.Event
	data  []byte
}

// readJournal returns the events under inputDir/events in sequence order. Files not named
// event_<seq>.json are skipped.
func readJournal(inputDir string) ([]journalEntry, error) {
	eventsDir := filepath.Join(inputDir, "events")
	files, err := os.ReadDir(eventsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read events directory: %w", err)
	}

	var entries []journalEntry
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasPrefix(name, "event_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		seq, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimPrefix(name, "event_"), ".json"), 10, 64)
		if err != nil {
			continue
		}

		data, err := os.ReadFile(filepath.Join(eventsDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read event file '%s': %w", name, err)
		}

		compact := new(bytes.Buffer)
		if err := json.Compact(compact, data); err != nil {
			return nil, fmt.Errorf("failed to compact JSON data for event '%s': %w", name, err)
		}

		entry := journalEntry{seq: seq, data: compact.Bytes()}
		if err := json.Unmarshal(entry.data, &entry.event); err != nil {
			return nil, fmt.Errorf("failed to decode event '%s': %w", name, err)
		}
		entries = append(entries, entry)
	}
	// os.ReadDir sorts by name and the sequence is zero padded.
	return entries, nil
}

func writeTSV(outputPath string, entries []journalEntry, line func(journalEntry) (string, bool)) error {
	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create TSV file: %w", err)
	}
	defer outputFile.Close()
	writer := bufio.NewWriter(outputFile)

	for _, entry := range entries {
		l, ok := line(entry)
		if !ok {
			continue
		}
		if _, err := writer.WriteString(l); err != nil {
			return fmt.Errorf("failed to write to TSV file: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush TSV file: %w", err)
	}
	return nil
}

// ExportEventsTSV converts a JSON journal into the seq, type, data layout of the TSV journal.
func ExportEventsTSV(inputDir, outputPath string) error {
	entries, err := readJournal(inputDir)
	if err != nil {
		return err
	}
	return writeTSV(outputPath, entries, func(e journalEntry) (string, bool) {
		return fmt.Sprintf("%d\t%s\t%s\n", e.seq, e.event.Type, e.data), true
	})
}

// ExportRejectionsTSV writes one line per rejected block: seq, ts, tid, kind, message, value.
func ExportRejectionsTSV(inputDir, outputPath string) error {
	entries, err := readJournal(inputDir)
	if err != nil {
		return err
	}
	return writeTSV(outputPath, entries, func(e journalEntry) (string, bool) {
		if e.event.Type != ledger.EventBlockRejected {
			return "", false
		}
		ev := e.event
		return fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s\n", e.seq, ev.Timestamp, ev.TID, ev.Kind, ev.Message, ev.Value), true
	})
}
