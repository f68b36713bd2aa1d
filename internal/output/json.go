package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/manifest-network/adacoin/internal/models"
)

type JSONOutputHandler struct {
	eventDir string
}

func NewJSONOutputHandler(outDir string) (*JSONOutputHandler, error) {
	eventDir := filepath.Join(outDir, "events")

	err := os.MkdirAll(eventDir, 0755)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create events directory")
	}

	return &JSONOutputHandler{
		eventDir: eventDir,
	}, nil
}

// GetLatestSeq returns the highest sequence number among the event_<seq>.json files already in
// the directory, or 0 when there are none.
func (h *JSONOutputHandler) GetLatestSeq(_ context.Context) (uint64, error) {
	files, err := os.ReadDir(h.eventDir)
	if err != nil {
		return 0, errors.WithMessage(err, "failed to read events directory")
	}

	var latest uint64
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasPrefix(name, "event_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		seq, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimPrefix(name, "event_"), ".json"), 10, 64)
		if err != nil {
			continue
		}
		latest = max(latest, seq)
	}
	return latest, nil
}

func (h *JSONOutputHandler) WriteEvent(_ context.Context, event *models.Event) error {
	fileName := fmt.Sprintf("event_%010d.json", event.Seq)
	filePath := filepath.Join(h.eventDir, fileName)
	if err := os.WriteFile(filePath, event.Data, 0644); err != nil {
		return errors.WithMessage(err, "failed to write event file")
	}
	return nil
}

func (h *JSONOutputHandler) Close() error {
	return nil
}
