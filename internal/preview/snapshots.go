package preview

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// ErrSnapshotNotFound 快照不存在
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot 保存下来的一帧
type Snapshot struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Frames    int       `json:"frames"`
	Frame     *Frame    `json:"frame,omitempty"`
}

// SnapshotStore 用 SQLite 保存帧快照，便于对比不同参数下的画面
type SnapshotStore struct {
	db *sql.DB
}

// OpenSnapshotStore 打开（或创建）快照数据库
// path 为 ":memory:" 时使用内存数据库
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot db %s: %w", path, err)
	}
	// 内存数据库按连接隔离，只保留一个连接
	db.SetMaxOpenConns(1)

	createTable := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		frames INTEGER NOT NULL,
		frame TEXT NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}
	log.Printf("[Snapshots] 数据库已打开: %s", path)
	return &SnapshotStore{db: db}, nil
}

// Save 保存一帧，返回快照 ID
func (s *SnapshotStore) Save(name string, frame Frame) (int64, error) {
	data, err := json.Marshal(frame)
	if err != nil {
		return 0, fmt.Errorf("failed to encode frame: %w", err)
	}
	res, err := s.db.Exec(`
		INSERT INTO snapshots (name, created_at, frames, frame)
		VALUES (?, ?, ?, ?)
	`, name, time.Now().UTC(), frame.Frames, string(data))
	if err != nil {
		return 0, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return res.LastInsertId()
}

// List 按创建顺序倒序列出快照（不含帧内容）
func (s *SnapshotStore) List() ([]Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT id, name, created_at, frames
		FROM snapshots
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	out := []Snapshot{}
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.CreatedAt, &snap.Frames); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Get 读取一个快照及其帧内容
func (s *SnapshotStore) Get(id int64) (Snapshot, error) {
	var snap Snapshot
	var data string
	err := s.db.QueryRow(`
		SELECT id, name, created_at, frames, frame
		FROM snapshots WHERE id = ?
	`, id).Scan(&snap.ID, &snap.Name, &snap.CreatedAt, &snap.Frames, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("snapshot %d: %w", id, ErrSnapshotNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load snapshot %d: %w", id, err)
	}
	var frame Frame
	if err := json.Unmarshal([]byte(data), &frame); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %d is corrupt: %w", id, err)
	}
	snap.Frame = &frame
	return snap, nil
}

// Delete 删除快照
func (s *SnapshotStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("snapshot %d: %w", id, ErrSnapshotNotFound)
	}
	return nil
}

// Close 关闭数据库
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
