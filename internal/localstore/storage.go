package localstore

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNoKey = errors.New("localstore: key not found")

type Store struct {
	db *sqlx.DB

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func New(db *sqlx.DB) *Store { return &Store{db: db, locks: map[string]*sessionLock{}} }

// Lock serialises read-modify-write cycles of one session. The returned func
// releases it.
func (s *Store) Lock(sessionID string) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}

// Scope returns the key/value view of one browser session.
func (s *Store) Scope(sessionID string) *Scoped {
	return &Scoped{db: s.db, sid: sessionID}
}

// PurgeStale drops every session whose newest write is older than ttl.
func (s *Store) PurgeStale(ttl time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-ttl).Format(time.RFC3339)
	res, err := s.db.Exec(`
		DELETE FROM local_storage
		WHERE session_id IN (
		  SELECT session_id FROM local_storage
		  GROUP BY session_id
		  HAVING MAX(updated_at) < ?
		)`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type Scoped struct {
	db  *sqlx.DB
	sid string
}

func (s *Scoped) SessionID() string { return s.sid }

func (s *Scoped) Get(key string) (string, error) {
	var v string
	err := s.db.Get(&v, `SELECT value FROM local_storage WHERE session_id = ? AND key = ?`, s.sid, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoKey
	}
	return v, err
}

func (s *Scoped) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO local_storage(session_id, key, value, updated_at)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(session_id, key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at
	`, s.sid, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Scoped) Remove(key string) error {
	_, err := s.db.Exec(`DELETE FROM local_storage WHERE session_id = ? AND key = ?`, s.sid, key)
	return err
}
