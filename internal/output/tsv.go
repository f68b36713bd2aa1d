package output

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pkg/errors"

	"github.com/manifest-network/adacoin/internal/models"
)

const eventsTSV = "events.tsv"

// TSVOutputHandler appends events to events.tsv, one seq\ttype\tjson line each. An existing file
// is extended, never truncated.
type TSVOutputHandler struct {
	mu          sync.Mutex
	lastSeq     uint64
	eventFile   *os.File
	eventWriter *bufio.Writer
}

func NewTSVOutputHandler(outDir string) (*TSVOutputHandler, error) {
	err := os.MkdirAll(outDir, 0755)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create output directory")
	}

	path := filepath.Join(outDir, eventsTSV)
	lastSeq, err := lastTSVSeq(path)
	if err != nil {
		return nil, err
	}

	eventFile, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to open events TSV file")
	}

	return &TSVOutputHandler{
		lastSeq:     lastSeq,
		eventFile:   eventFile,
		eventWriter: bufio.NewWriter(eventFile),
	}, nil
}

// lastTSVSeq reads the sequence number of the last line of an existing events file.
func lastTSVSeq(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.WithMessage(err, "failed to read events TSV file")
	}

	data = bytes.TrimRight(data, "\n")
	if len(data) == 0 {
		return 0, nil
	}
	line := data[bytes.LastIndexByte(data, '\n')+1:]
	field, _, _ := bytes.Cut(line, []byte("\t"))
	seq, err := strconv.ParseUint(string(field), 10, 64)
	if err != nil {
		return 0, errors.WithMessagef(err, "malformed last line in %s", path)
	}
	return seq, nil
}

// GetLatestSeq returns the sequence number of the last line present when the handler was opened.
func (h *TSVOutputHandler) GetLatestSeq(_ context.Context) (uint64, error) {
	return h.lastSeq, nil
}

func (h *TSVOutputHandler) WriteEvent(_ context.Context, event *models.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	line := fmt.Sprintf("%d\t%s\t%s\n", event.Seq, event.Type, string(event.Data))
	_, err := h.eventWriter.WriteString(line)
	return err
}

func (h *TSVOutputHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.eventWriter.Flush(); err != nil {
		slog.Error("failed to flush event writer", "errors", err)
		return err
	}
	if err := h.eventFile.Close(); err != nil {
		slog.Error("failed to close event file", "errors", err)
		return err
	}
	return nil
}
