package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record 是退出时保存的会话快照：resume 时恢复 token 与命令历史。
type Record struct {
	ID       string    `json:"id"`
	Endpoint string    `json:"endpoint"`
	Token    string    `json:"token"`
	Commands []string  `json:"commands,omitempty"`
	Updated  time.Time `json:"updated"`
}

// Store 把 Record 以 {id}.json 的形式保存在 Dir 下。
type Store struct {
	Dir string
}

var ErrNoSessions = errors.New("no sessions found")

func (s Store) ensureDir() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("session dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

// Save writes rec, assigning a fresh id when it has none, and returns the id.
func (s Store) Save(rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := s.ensureDir(); err != nil {
		return "", err
	}
	rec.Updated = time.Now()
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(s.path(rec.ID), data, 0o600); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s Store) Load(id string) (Record, error) {
	var rec Record
	if _, err := uuid.Parse(id); err != nil {
		return rec, fmt.Errorf("invalid session id %q: %w", id, err)
	}
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// List returns saved sessions, newest first. Unreadable files are skipped.
func (s Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var records []Record
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		rec, err := s.Load(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Updated.After(records[j].Updated)
	})
	return records, nil
}

// Last returns the most recently saved session.
func (s Store) Last() (Record, error) {
	records, err := s.List()
	if err != nil {
		return Record{}, err
	}
	if len(records) == 0 {
		return Record{}, ErrNoSessions
	}
	return records[0], nil
}

func (s Store) path(id string) string {
	return filepath.Join(s.Dir, id+".json")
}
