package logs

const createMoveTable = `
CREATE TABLE IF NOT EXISTS moves (
  id integer primary key autoincrement,
  time datetime not null,
  conn_id varchar not null,
  uuid varchar not null,
  board varchar not null,
  x int not null,
  y int not null
)`

const createMoveIndex = `
CREATE INDEX IF NOT EXISTS moves_by_uuid ON moves (uuid, time)
`

const insertStmt = `
INSERT INTO moves (time, conn_id, uuid, board, x, y)
VALUES (:time, :conn_id, :uuid, :board, :x, :y)
`

const selectMoves = `
SELECT id, time, conn_id, uuid, board, x, y FROM moves
`
