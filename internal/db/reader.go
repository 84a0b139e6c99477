package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/michaelscutari/dugsh/internal/entry"
	"github.com/michaelscutari/dugsh/internal/pathutil"
)

// DisplayEntry combines entry data with rollup data for display.
type DisplayEntry struct {
	Path       string
	Name       string
	Kind       entry.Kind
	Size       int64
	TotalSize  int64
	TotalFiles int64
	TotalDirs  int64
}

// Reader answers browse queries against a loaded index.
type Reader struct {
	db   *sql.DB
	dirs *lru[string, int64]
}

// NewReader creates a reader with an empty path cache.
func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db, dirs: newLRU[string, int64](dirCacheSize)}
}

// DB returns the underlying database.
func (r *Reader) DB() *sql.DB { return r.db }

// dirID resolves a directory path to its row id. Found is false if no such
// directory exists.
func (r *Reader) dirID(path string) (int64, bool, error) {
	if id, ok := r.dirs.Get(path); ok {
		return id, true, nil
	}
	var id int64
	err := r.db.QueryRow(`SELECT id FROM dirs WHERE path = ?`, path).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	r.dirs.Put(path, id)
	return id, true, nil
}

// LoadChildren loads child entries for a directory with rollup data.
// sortBy is one of size, name or files.
func (r *Reader) LoadChildren(parentPath, sortBy string, limit int) ([]DisplayEntry, error) {
	parentPath = pathutil.Normalize(parentPath)
	orderClause := "total_size DESC, name ASC"
	switch sortBy {
	case "name":
		orderClause = "name ASC"
	case "files":
		orderClause = "total_files DESC, name ASC"
	}

	query := fmt.Sprintf(`
		SELECT d.path AS path, d.name AS name, ? AS kind, 0 AS size,
		       COALESCE(r.total_size, 0) AS total_size,
		       COALESCE(r.total_files, 0) AS total_files,
		       COALESCE(r.total_dirs, 0) AS total_dirs
		FROM dirs d
		LEFT JOIN rollups r ON r.dir_id = d.id
		WHERE d.parent_id = ?

		UNION ALL

		SELECT CASE WHEN pd.path = '/' THEN '/' || e.name ELSE pd.path || '/' || e.name END,
		       e.name, e.kind, e.size, e.size, 1, 0
		FROM entries e
		JOIN dirs pd ON pd.id = e.parent_id
		WHERE e.parent_id = ?
		ORDER BY %s
		LIMIT ?
	`, orderClause)

	parentID, ok, err := r.dirID(parentPath)
	if err != nil {
		return nil, fmt.Errorf("parent lookup failed: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("parent not found: %s", parentPath)
	}

	rows, err := r.db.Query(query, entry.KindDir, parentID, parentID, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var entries []DisplayEntry
	for rows.Next() {
		var e DisplayEntry
		if err := rows.Scan(&e.Path, &e.Name, &e.Kind, &e.Size, &e.TotalSize, &e.TotalFiles, &e.TotalDirs); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetRollup retrieves rollup data for a directory path. It returns nil if
// the path is not a directory.
func (r *Reader) GetRollup(path string) (*entry.Rollup, error) {
	dirID, ok, err := r.dirID(pathutil.Normalize(path))
	if err != nil || !ok {
		return nil, err
	}

	ru := entry.Rollup{DirID: dirID}
	err = r.db.QueryRow(`
		SELECT total_size, total_files, total_dirs
		FROM rollups WHERE dir_id = ?
	`, dirID).Scan(&ru.TotalSize, &ru.TotalFiles, &ru.TotalDirs)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ru, nil
}

// GetReplayMeta retrieves replay metadata.
func (r *Reader) GetReplayMeta() (*entry.ReplayMeta, error) {
	var m entry.ReplayMeta
	var startTime, endTime int64

	err := r.db.QueryRow(`
		SELECT source, start_time, COALESCE(end_time, 0), line_count, total_size, file_count, dir_count
		FROM replay_meta WHERE id = 1
	`).Scan(&m.Source, &startTime, &endTime, &m.LineCount, &m.TotalSize, &m.FileCount, &m.DirCount)

	if err != nil {
		return nil, err
	}

	m.StartTime = time.Unix(startTime, 0)
	if endTime > 0 {
		m.EndTime = time.Unix(endTime, 0)
	}

	return &m, nil
}
