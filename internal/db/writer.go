package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/michaelscutari/dugsh/internal/entry"
	"github.com/michaelscutari/dugsh/internal/fstree"
)

const insertDirSQL = `INSERT INTO dirs (id, path, name, parent_id, depth) VALUES (?, ?, ?, ?, ?)`
const insertEntrySQL = `INSERT INTO entries (id, parent_id, name, kind, size) VALUES (?, ?, ?, ?, ?)`
const insertRollupSQL = `INSERT OR REPLACE INTO rollups (dir_id, total_size, total_files, total_dirs) VALUES (?, ?, ?, ?)`
const insertMetaSQL = `
INSERT OR REPLACE INTO replay_meta (id, source, start_time, end_time, line_count, total_size, file_count, dir_count)
VALUES (1, ?, ?, ?, ?, ?, ?, ?)`

const defaultBatchSize = 10000

// Loader copies a finished tree into the index in batched transactions.
// Row ids are the tree's node ids, so rows map straight back to nodes.
type Loader struct {
	db        *sql.DB
	batchSize int

	tx      *sql.Tx
	txStmts [numStmts]*sql.Stmt
	pending int

	stmts [numStmts]*sql.Stmt
}

const (
	dirStmt = iota
	entryStmt
	rollupStmt
	numStmts
)

// NewLoader creates a loader. A batchSize of zero uses the default.
func NewLoader(db *sql.DB, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Loader{db: db, batchSize: batchSize}
}

// Load writes every node, the rollup table and the replay metadata.
func (l *Loader) Load(ctx context.Context, t *fstree.Tree, rollups map[fstree.ID]entry.Rollup, meta *entry.ReplayMeta) error {
	for i, query := range [numStmts]string{insertDirSQL, insertEntrySQL, insertRollupSQL} {
		stmt, err := l.db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()
		l.stmts[i] = stmt
	}

	defer func() {
		if l.tx != nil {
			l.tx.Rollback()
			l.tx = nil
		}
	}()

	for i := 0; i < t.Len(); i++ {
		id := fstree.ID(i)
		if i%l.batchSize == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := l.writeNode(t, id); err != nil {
			return err
		}
		if r, ok := rollups[id]; ok {
			if err := l.exec(rollupStmt, r.DirID, r.TotalSize, r.TotalFiles, r.TotalDirs); err != nil {
				return fmt.Errorf("failed to insert rollup for %s: %w", t.Path(id), err)
			}
		}
	}

	if err := l.commit(); err != nil {
		return err
	}

	if meta != nil {
		_, err := l.db.Exec(insertMetaSQL, meta.Source, meta.StartTime.Unix(), meta.EndTime.Unix(),
			meta.LineCount, meta.TotalSize, meta.FileCount, meta.DirCount)
		if err != nil {
			return fmt.Errorf("failed to insert replay metadata: %w", err)
		}
	}
	return nil
}

func (l *Loader) writeNode(t *fstree.Tree, id fstree.ID) error {
	parent, hasParent := t.Parent(id)
	if !t.IsDir(id) {
		if err := l.exec(entryStmt, int64(id), int64(parent), t.Name(id), t.Kind(id), t.Size(id)); err != nil {
			return fmt.Errorf("failed to insert entry %q: %w", t.Path(id), err)
		}
		return nil
	}

	var parentID sql.NullInt64
	if hasParent {
		parentID = sql.NullInt64{Int64: int64(parent), Valid: true}
	}
	if err := l.exec(dirStmt, int64(id), t.Path(id), t.Name(id), parentID, t.Depth(id)); err != nil {
		return fmt.Errorf("failed to insert dir %q: %w", t.Path(id), err)
	}
	return nil
}

// exec runs a prepared statement inside the current batch transaction,
// committing once the batch is full.
func (l *Loader) exec(which int, args ...any) error {
	if l.tx == nil {
		tx, err := l.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		l.tx = tx
		for i, stmt := range l.stmts {
			l.txStmts[i] = tx.Stmt(stmt)
		}
	}
	if _, err := l.txStmts[which].Exec(args...); err != nil {
		return err
	}
	l.pending++
	if l.pending >= l.batchSize {
		return l.commit()
	}
	return nil
}

func (l *Loader) commit() error {
	if l.tx == nil {
		return nil
	}
	err := l.tx.Commit()
	l.tx = nil
	l.pending = 0
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
