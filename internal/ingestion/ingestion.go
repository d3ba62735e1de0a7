package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/salesdata/internal/daterange"
	"github.com/guttosm/salesdata/internal/logger"
	"github.com/guttosm/salesdata/internal/metrics"
	"github.com/guttosm/salesdata/internal/storage"
)

const (
	fileSuffix       = "_ORDERS.csv"
	defaultBatchSize = 5000
	maxParallel      = 8
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.OrdersRepository {
	return storage.NewOrdersRepository(db, "")
}

// exportFile is one daily export found in the input directory.
type exportFile struct {
	path string
	name string
	day  time.Time // midnight of the export day, UTC, as stored in ingestion_log
}

// ProcessDirectory loads every daily order export found in dir.
//
//   - dir: directory containing "DD-MM-YYYY_ORDERS.csv" files.
//   - db:  open *sql.DB (PostgreSQL).
//   - parallel: files processed concurrently (0 = NumCPU), capped at 8.
//   - force: reload days already present in ingestion_log.
//   - loc: zone of the export day. Every order of a file must be created
//     inside that local day.
//
// Behavior:
//   - The date prefix of every file name follows the same rules as the
//     sales endpoint (DD-MM-YYYY, bounded fields, real calendar day).
//   - Each file is loaded in one transaction that first clears its day,
//     so a failed file leaves nothing behind and can simply be rerun.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, force bool, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	repo := repoCtor(db)

	files, err := listExports(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no *%s files found in %s", fileSuffix, dir)
	}

	limit := parallelism(parallel)
	logger.L().Info().Int("files", len(files)).Str("dir", dir).Int("max_parallel", limit).Msg("ingestion start")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range files {
		idx, f := i, file
		g.Go(func() error {
			return ingestFile(gctx, repo, f, idx, len(files), force, loc)
		})
	}

	return g.Wait()
}

func ingestFile(ctx context.Context, repo storage.OrdersRepository, f exportFile, idx, total int, force bool, loc *time.Location) error {
	start := time.Now()
	log := logger.L().With().Str("file", f.name).Int("idx", idx+1).Int("total", total).Logger()
	log.Info().Msg("file start")

	// Idempotency: skip if already ingested, unless force
	exists, err := repo.HasIngestionForDate(f.day)
	if err != nil {
		log.Error().Err(err).Msg("check ingestion log failed")
		return fmt.Errorf("file %s: check ingestion log: %w", f.path, err)
	}
	if exists && !force {
		log.Info().Bool("skipped", true).Msg("already ingested")
		return nil
	}

	// The file owns its whole local day: whatever is stored for it, from a
	// previous load or an interrupted one, is replaced in one transaction.
	y, m, d := f.day.Date()
	from := daterange.StartOfDay(y, m, d, loc)
	to := daterange.StartOfDay(y, m, d+1, loc)

	load, err := repo.BeginDayLoad(ctx, from, to)
	if err != nil {
		log.Error().Err(err).Msg("begin load failed")
		return fmt.Errorf("file %s: %w", f.path, err)
	}
	defer func() { _ = load.Rollback() }()

	rows, err := parseAndPersistFile(ctx, f.path, load, defaultBatchSize, from, to)
	if err != nil {
		log.Error().Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
		return fmt.Errorf("file %s: %w", f.path, err)
	}
	if err := load.Finish(f.day, f.name, rows); err != nil {
		log.Error().Err(err).Msg("finish load failed")
		return fmt.Errorf("file %s: %w", f.path, err)
	}
	metrics.AddIngested(rows)
	log.Info().Int("rows", rows).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
	return nil
}

// listExports returns the export files of dir sorted by day.
func listExports(dir string) ([]exportFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []exportFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		day, err := exportDay(name)
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", name, err)
		}
		files = append(files, exportFile{path: filepath.Join(dir, name), name: name, day: day})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].day.Before(files[j].day) })
	return files, nil
}

// exportDay extracts the day encoded in an export file name.
func exportDay(name string) (time.Time, error) {
	d, err := daterange.ParseDate("file", strings.TrimSuffix(name, fileSuffix))
	if err != nil {
		return time.Time{}, err
	}
	return d.In(time.UTC)
}

func parallelism(requested int) int {
	n := requested
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > maxParallel {
		n = maxParallel
	}
	if n < 1 {
		n = 1
	}
	return n
}
