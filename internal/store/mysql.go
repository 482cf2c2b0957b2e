package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"batepapo/internal/model"
)

// errDuplicateEntry is MySQL's ER_DUP_ENTRY
const errDuplicateEntry = 1062

// MySQL is a Store backed by MariaDB/MySQL. The schema is created by database.Migrate.
type MySQL struct {
	db *sql.DB
}

// NewMySQL wraps an open connection pool
func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{db: db}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrStoreUnavailable, op, err)
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errDuplicateEntry
}

func (s *MySQL) InsertParticipant(ctx context.Context, p model.Participant) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO participants (name, last_seen) VALUES (?, ?)",
		p.Name, p.LastSeen.UTC())
	if isDuplicate(err) {
		return model.ErrConflict
	}
	if err != nil {
		return unavailable("insert participant", err)
	}
	return nil
}

func (s *MySQL) GetParticipant(ctx context.Context, name string) (model.Participant, error) {
	var p model.Participant
	err := s.db.QueryRowContext(ctx,
		"SELECT name, last_seen FROM participants WHERE name = ?", name).
		Scan(&p.Name, &p.LastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Participant{}, model.ErrNotFound
	}
	if err != nil {
		return model.Participant{}, unavailable("get participant", err)
	}
	return p, nil
}

func (s *MySQL) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, last_seen FROM participants")
	if err != nil {
		return nil, unavailable("list participants", err)
	}
	defer rows.Close()

	participants := []model.Participant{}
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.Name, &p.LastSeen); err != nil {
			return nil, unavailable("scan participant", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list participants", err)
	}
	return participants, nil
}

func (s *MySQL) TouchParticipant(ctx context.Context, name string, at time.Time) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE participants SET last_seen = ? WHERE name = ?", at.UTC(), name)
	if err != nil {
		return unavailable("touch participant", err)
	}
	// MySQL reports 0 affected rows when the value did not change
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	_, err = s.GetParticipant(ctx, name)
	return err
}

func (s *MySQL) RemoveIdleParticipant(ctx context.Context, name string, cutoff time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM participants WHERE name = ? AND last_seen <= ?", name, cutoff.UTC())
	if err != nil {
		return false, unavailable("remove participant", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, unavailable("remove participant", err)
	}
	return n > 0, nil
}

func (s *MySQL) AppendMessage(ctx context.Context, m model.Message) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (id, from_name, to_name, text, type, time, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		m.ID, m.From, m.To, m.Text, string(m.Type), m.Time, m.CreatedAt.UTC())
	if err != nil {
		return unavailable("append message", err)
	}
	return nil
}

const selectMessages = "SELECT id, from_name, to_name, text, type, time, created_at FROM messages"

func scanMessage(row interface{ Scan(...any) error }) (model.Message, error) {
	var m model.Message
	var kind string
	if err := row.Scan(&m.ID, &m.From, &m.To, &m.Text, &kind, &m.Time, &m.CreatedAt); err != nil {
		return model.Message{}, err
	}
	m.Type = model.Kind(kind)
	return m, nil
}

func (s *MySQL) GetMessage(ctx context.Context, id string) (model.Message, error) {
	m, err := scanMessage(s.db.QueryRowContext(ctx, selectMessages+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Message{}, model.ErrNotFound
	}
	if err != nil {
		return model.Message{}, unavailable("get message", err)
	}
	return m, nil
}

func (s *MySQL) ListMessages(ctx context.Context) ([]model.Message, error) {
	rows, err := s.db.QueryContext(ctx, selectMessages+" ORDER BY seq DESC")
	if err != nil {
		return nil, unavailable("list messages", err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, unavailable("scan message", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list messages", err)
	}
	return messages, nil
}

func (s *MySQL) UpdateMessage(ctx context.Context, m model.Message) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE messages SET to_name = ?, text = ?, type = ? WHERE id = ?",
		m.To, m.Text, string(m.Type), m.ID)
	if err != nil {
		return unavailable("update message", err)
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	_, err = s.GetMessage(ctx, m.ID)
	return err
}

func (s *MySQL) DeleteMessage(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id)
	if err != nil {
		return unavailable("delete message", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return unavailable("delete message", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *MySQL) Close() error {
	return s.db.Close()
}
