package core

import (
	"errors"

	"go.uber.org/zap"

	"spotify2yt/internal/store"
	"spotify2yt/pkg/fuzzy"
)

// ErrNoSongs is returned when a run ends up with nothing to download.
var ErrNoSongs = errors.New("no songs found")

// BatchBuilder turns parsed songs into a PlaylistBatch.
type BatchBuilder struct {
	quality    Quality
	normalizer *fuzzy.Normalizer
	logger     *zap.Logger
}

// NewBatchBuilder creates a builder whose normalizer strips at the quality's level.
func NewBatchBuilder(quality Quality, logger *zap.Logger) *BatchBuilder {
	return &BatchBuilder{
		quality:    quality,
		normalizer: fuzzy.NewNormalizer(quality.Profile().StripLevel),
		logger:     logger,
	}
}

// Build normalizes songs in order and keeps the first song for every dedup key.
//
// seen is the dedup accumulator: keys it already holds (for example from an
// earlier run's history) are skipped, and every key added to the batch is
// recorded in it.
func (b *BatchBuilder) Build(songs []Song, seen *store.DedupStore) (*PlaylistBatch, BatchStats) {
	batch := &PlaylistBatch{Quality: b.quality}
	stats := BatchStats{Read: len(songs)}
	added := make(map[string]struct{}, len(songs))

	for _, song := range songs {
		q, err := b.normalizer.Normalize(song.Artist, song.Title)
		if err != nil {
			stats.Empty++
			b.logger.Debug("Skipping empty song", zap.Int("position", song.Position))
			continue
		}

		if _, dup := added[q.DedupKey]; dup {
			stats.Duplicates++
			b.logger.Debug("Skipping duplicate song",
				zap.Int("position", song.Position),
				zap.String("key", q.DedupKey))
			continue
		}

		if seen.Has(q.DedupKey) {
			stats.Known++
			b.logger.Debug("Skipping song from history",
				zap.Int("position", song.Position),
				zap.String("key", q.DedupKey))
			continue
		}

		seen.Add(q.DedupKey)
		added[q.DedupKey] = struct{}{}
		batch.Entries = append(batch.Entries, NormalizedQuery{
			Artist:       q.Artist,
			Title:        q.Title,
			SearchString: q.SearchString,
			DedupKey:     q.DedupKey,
			Position:     song.Position,
		})
	}

	stats.Added = len(batch.Entries)
	b.logger.Info("Built playlist batch",
		zap.String("quality", b.quality.String()),
		zap.Stringer("strip_level", b.normalizer.Level()),
		zap.Int("read", stats.Read),
		zap.Int("added", stats.Added),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("known", stats.Known),
		zap.Int("empty", stats.Empty))

	return batch, stats
}

// HistoryEntries converts the batch into rows for the history store.
func (b *PlaylistBatch) HistoryEntries() []store.HistoryEntry {
	entries := make([]store.HistoryEntry, 0, len(b.Entries))
	for _, entry := range b.Entries {
		entries = append(entries, store.HistoryEntry{Key: entry.DedupKey, Search: entry.SearchString})
	}
	return entries
}
