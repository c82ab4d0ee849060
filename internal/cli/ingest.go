package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
	"github.com/sceriffo01/sp-dev-modernization/internal/logstore"
	"github.com/sceriffo01/sp-dev-modernization/internal/observer"
	"github.com/sceriffo01/sp-dev-modernization/internal/output"
	"github.com/sceriffo01/sp-dev-modernization/internal/report"
	"golang.org/x/sync/errgroup"
)

// loadRecords reads every file concurrently. Records keep argument order,
// then line order within each file.
func loadRecords(ctx context.Context, files []string) ([]domain.Record, output.ReadStats, error) {
	type result struct {
		records []domain.Record
		stats   output.ReadStats
	}
	results := make([]result, len(files))

	group, ctx := errgroup.WithContext(ctx)
	for i, path := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, stats, err := readEntryFile(path)
			if err != nil {
				return err
			}
			results[i] = result{records: records, stats: stats}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, output.ReadStats{}, err
	}

	var (
		all   []domain.Record
		total output.ReadStats
	)
	for _, r := range results {
		all = append(all, r.records...)
		total.Lines += r.stats.Lines
		total.Entries += r.stats.Entries
		total.Skipped += r.stats.Skipped
		total.Invalid += r.stats.Invalid
	}
	return all, total, nil
}

func readEntryFile(path string) ([]domain.Record, output.ReadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, output.ReadStats{}, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	records, stats, err := output.ReadEntries(file)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}
	return records, stats, nil
}

// groupByPage splits records by page id, pages in first-seen order
func groupByPage(records []domain.Record) ([]string, map[string][]domain.Record) {
	var order []string
	byPage := make(map[string][]domain.Record)
	for _, rec := range records {
		id := rec.Entry.PageID
		if _, ok := byPage[id]; !ok {
			order = append(order, id)
		}
		byPage[id] = append(byPage[id], rec)
	}
	return order, byPage
}

// ingestPages replays each page through its own sink, up to workers pages at
// a time. Every page collects into a private store; the pages are then
// appended to store in file order so the report does not depend on scheduling.
func ingestPages(ctx context.Context, store *logstore.Store, renderer *report.Renderer, records []domain.Record, workers int, includeDebug bool) error {
	if workers < 1 {
		workers = 1
	}
	order, byPage := groupByPage(records)
	collected := make([][]domain.Record, len(order))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, id := range order {
		pageRecords := byPage[id]
		group.Go(func() error {
			local := logstore.New()
			sink := observer.New(local, renderer, nil, observer.WithIncludeDebug(includeDebug))
			sink.SetPageID(id)
			for _, rec := range pageRecords {
				if err := ctx.Err(); err != nil {
					return err
				}
				replay(sink, rec)
			}
			collected[i] = local.Snapshot()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for _, page := range collected {
		for _, rec := range page {
			store.Append(rec.Level, rec.Entry)
		}
	}
	return nil
}

func replay(sink *observer.Sink, rec domain.Record) {
	switch rec.Level {
	case domain.LogLevelDebug:
		sink.Debug(rec.Entry)
	case domain.LogLevelWarning:
		sink.Warning(rec.Entry)
	case domain.LogLevelError:
		sink.Error(rec.Entry)
	default:
		sink.Info(rec.Entry)
	}
}
