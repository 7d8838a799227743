// Package dataset loads the dish catalog from CSV sources.
package dataset

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/levi3112/Dishes-Recommendation-API/internal/models"
)

var (
	ErrNoSources     = errors.New("no dataset sources provided")
	ErrMissingColumn = errors.New("missing required column")
)

// SourceStats holds the row counts of one loaded source
type SourceStats struct {
	Source  string `json:"source"`
	Rows    int    `json:"rows"`
	Loaded  int    `json:"loaded"`
	Skipped int    `json:"skipped"`
}

// Loader loads dishes from local files or http(s) URLs, gzipped or plain
type Loader struct {
	client *http.Client
	logger *slog.Logger

	mu    sync.RWMutex
	stats []SourceStats
}

// NewLoader creates a new dataset loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
		logger: logger,
	}
}

// Load reads every source concurrently and concatenates the dishes in source order.
// Dish IDs are assigned sequentially from 1 over the concatenated catalog.
// Returns error if any source fails to load
func (l *Loader) Load(ctx context.Context, sources []string) ([]models.Dish, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	parts := make([][]models.Dish, len(sources))
	stats := make([]SourceStats, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			dishes, st, err := l.loadSource(gctx, source)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", source, err)
			}
			parts[i] = dishes
			stats[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, part := range parts {
		total += len(part)
	}
	catalog := make([]models.Dish, 0, total)
	for _, part := range parts {
		for _, dish := range part {
			dish.ID = int64(len(catalog) + 1)
			catalog = append(catalog, dish)
		}
	}

	l.mu.Lock()
	l.stats = stats
	l.mu.Unlock()

	for _, st := range stats {
		l.logger.Info("dataset source loaded",
			"source", st.Source,
			"rows", st.Rows,
			"loaded", st.Loaded,
			"skipped", st.Skipped,
		)
	}

	return catalog, nil
}

// Stats returns per-source statistics of the last successful load
func (l *Loader) Stats() []SourceStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := make([]SourceStats, len(l.stats))
	copy(stats, l.stats)
	return stats
}

func (l *Loader) loadSource(ctx context.Context, source string) ([]models.Dish, SourceStats, error) {
	rc, err := l.open(ctx, source)
	if err != nil {
		return nil, SourceStats{Source: source}, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if strings.HasSuffix(strings.ToLower(source), ".gz") {
		gzReader, err := gzip.NewReader(rc)
		if err != nil {
			return nil, SourceStats{Source: source}, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	dishes, st, err := Parse(r)
	st.Source = source
	return dishes, st, err
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
