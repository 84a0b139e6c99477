// Package replay runs a transcript file through the tree builder and
// indexes the result for browsing.
package replay

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/michaelscutari/dugsh/internal/db"
	"github.com/michaelscutari/dugsh/internal/entry"
	"github.com/michaelscutari/dugsh/internal/fstree"
	"github.com/michaelscutari/dugsh/internal/rollup"
)

// StageFunc is called when the replay stage changes.
type StageFunc func(stage string)

// Result is a finished replay.
type Result struct {
	Tree *fstree.Tree
	Meta entry.ReplayMeta
}

// Manager handles the replay lifecycle.
type Manager struct {
	logger    *zap.Logger
	stageFunc StageFunc
	batchSize int
}

// NewManager creates a new replay manager. A nil logger discards output.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger}
}

// SetStageFunc sets a callback for stage updates.
func (m *Manager) SetStageFunc(f StageFunc) {
	m.stageFunc = f
}

// SetBatchSize sets the index loader's batch size.
func (m *Manager) SetBatchSize(n int) {
	m.batchSize = n
}

func (m *Manager) stage(s string) {
	m.logger.Debug("replay stage", zap.String("stage", s))
	if m.stageFunc != nil {
		m.stageFunc(s)
	}
}

// RunFile replays the transcript stored at path.
func (m *Manager) RunFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer f.Close()
	return m.Run(ctx, path, f)
}

// Run replays a transcript read from r. source names the input in metadata
// and log output.
func (m *Manager) Run(ctx context.Context, source string, r io.Reader) (*Result, error) {
	start := time.Now()
	m.stage("replay")

	b := fstree.NewBuilder()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if b.Lines()%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if err := b.Feed(strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			m.logger.Debug("replay aborted", zap.String("source", source), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", source, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	lines := b.Lines()
	tree, err := b.Finish()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	res := &Result{
		Tree: tree,
		Meta: entry.ReplayMeta{
			Source:    source,
			StartTime: start,
			EndTime:   time.Now(),
			LineCount: int64(lines),
		},
	}
	for i := 0; i < tree.Len(); i++ {
		id := fstree.ID(i)
		if tree.IsDir(id) {
			res.Meta.DirCount++
		} else {
			res.Meta.FileCount++
			res.Meta.TotalSize += tree.Size(id)
		}
	}

	m.logger.Debug("replay finished",
		zap.String("source", source),
		zap.Int64("lines", res.Meta.LineCount),
		zap.Int64("files", res.Meta.FileCount),
		zap.Int64("dirs", res.Meta.DirCount),
		zap.Duration("took", res.Meta.EndTime.Sub(start)),
	)
	return res, nil
}

// Index loads a finished replay into a fresh in-memory database. The caller
// owns the returned database.
func (m *Manager) Index(ctx context.Context, res *Result) (*sql.DB, error) {
	database, err := db.OpenMemory()
	if err != nil {
		return nil, err
	}

	m.stage("rollups")
	builder := rollup.NewBuilder(res.Tree)
	builder.SetProgressFunc(func(done, total int64, depth, maxDepth int) {
		m.logger.Debug("rollup progress", zap.Int64("done", done), zap.Int64("total", total), zap.Int("depth", depth))
	})
	rollups := builder.Build()

	m.stage("load")
	if err := db.NewLoader(database, m.batchSize).Load(ctx, res.Tree, rollups, &res.Meta); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load index: %w", err)
	}

	m.stage("indexes")
	if err := db.BuildIndexes(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to build indexes: %w", err)
	}

	m.stage("done")
	return database, nil
}
