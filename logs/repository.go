package logs

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite

	"github.com/nelhage/tictactician/tictactoe"
)

type Repository struct {
	db *sqlx.DB

	insert *sqlx.NamedStmt
}

// A Move is one PutToken we sent, with the board it answered.
type Move struct {
	ID     int64     `db:"id"`
	Time   time.Time `db:"time"`
	ConnID string    `db:"conn_id"`
	UUID   string    `db:"uuid"`
	Board  string    `db:"board"`
	X      int       `db:"x"`
	Y      int       `db:"y"`
}

func Open(db string) (*Repository, error) {
	sql, err := sqlx.Open("sqlite3", db)
	if err != nil {
		return nil, err
	}
	_, err = sql.Exec(createMoveTable)
	if err != nil {
		sql.Close()
		return nil, fmt.Errorf("create moves table: %w", err)
	}
	_, err = sql.Exec(createMoveIndex)
	if err != nil {
		sql.Close()
		return nil, fmt.Errorf("create moves index: %w", err)
	}

	repo := &Repository{db: sql}
	repo.insert, err = sql.PrepareNamed(insertStmt)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return repo, nil
}

func (r *Repository) InsertMove(m *Move) error {
	return r.insertMove(r.insert, m)
}

func (r *Repository) insertMove(stmt *sqlx.NamedStmt, m *Move) error {
	res, err := stmt.Exec(m)
	if err != nil {
		return err
	}
	m.ID, err = res.LastInsertId()
	return err
}

func (r *Repository) InsertMoves(ms []*Move) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	stmt := txn.NamedStmt(r.insert)
	for _, m := range ms {
		if e := r.insertMove(stmt, m); e != nil {
			return e
		}
	}
	return txn.Commit()
}

// RecordMove logs a move as it is played.
func (r *Repository) RecordMove(connID, uuid string, b tictactoe.Board, sq tictactoe.Square) error {
	return r.InsertMove(&Move{
		Time:   time.Now().UTC(),
		ConnID: connID,
		UUID:   uuid,
		Board:  b.Format(),
		X:      sq.X,
		Y:      sq.Y,
	})
}

// Moves lists recorded moves in the order they were played. An empty
// uuid lists every session's moves.
func (r *Repository) Moves(uuid string) ([]*Move, error) {
	var out []*Move
	var err error
	if uuid == "" {
		err = r.db.Select(&out, selectMoves+" ORDER BY id")
	} else {
		err = r.db.Select(&out, selectMoves+" WHERE uuid = ? ORDER BY id", uuid)
	}
	if err != nil {
		return nil, fmt.Errorf("select moves: %w", err)
	}
	return out, nil
}

func (r *Repository) Close() {
	if r.insert != nil {
		r.insert.Close()
	}
	r.db.Close()
}
