package manager

import (
	"context"

	"github.com/kasuboski/episodez/pkg/library"
	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/kasuboski/episodez/pkg/match"
	"go.uber.org/zap"
)

// ScanResult is the verdict for one file in a scanned folder
type ScanResult struct {
	File   library.FileEntry `json:"file"`
	Result match.Result      `json:"result"`
	Needed bool              `json:"needed"`
}

// ScanFolder classifies every useful file directly inside dir as needed or a duplicate of something already in the library.
// Cancelling ctx stops the scan between files and returns what was classified so far.
func (m *Manager) ScanFolder(ctx context.Context, dir string, showID int64) ([]ScanResult, error) {
	log := logger.FromCtx(ctx)

	show, err := m.Show(showID)
	if err != nil {
		return nil, err
	}

	dc := m.reconciler.NewCache()
	files := dc.Get(ctx, dir)

	results := make([]ScanResult, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			log.Debug("scan cancelled", zap.String("dir", dir), zap.Int("scanned", len(results)))
			return results, err
		}

		if f.IsDir || !m.reconciler.IsUseful(f.Name) {
			continue
		}

		result := m.matcher.Identify(ctx, f.Entry(), &show)
		results = append(results, ScanResult{
			File:   f,
			Result: result,
			Needed: m.reconciler.ResultNeeded(ctx, dc, f, show, result),
		})
	}

	return results, nil
}
