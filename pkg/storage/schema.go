package storage

const driverName = "sqlite"

// pragmas tune the connection for large batched writes
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA temp_store=MEMORY",
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS nodes (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS edges (
		src        TEXT NOT NULL,
		dst        TEXT NOT NULL,
		delay_rise REAL NOT NULL DEFAULT 0,
		delay_fall REAL NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_edges_src_dst ON edges (src, dst)`,
}

const (
	insertNodeSQL = `INSERT OR IGNORE INTO nodes (name) VALUES (?)`
	insertEdgeSQL = `INSERT INTO edges (src, dst, delay_rise, delay_fall) VALUES (?, ?, ?, ?)`

	// Delay updates are staged in a temp table keyed by sink pin, then
	// applied with a single joined UPDATE.
	createDelayTableSQL = `CREATE TEMP TABLE IF NOT EXISTS delay_updates (
		pin  TEXT PRIMARY KEY,
		rise REAL NOT NULL,
		fall REAL NOT NULL
	)`
	clearDelayTableSQL = `DELETE FROM delay_updates`
	stageDelaySQL      = `INSERT OR REPLACE INTO delay_updates (pin, rise, fall) VALUES (?, ?, ?)`
	applyDelaysSQL     = `UPDATE edges
		SET delay_rise = u.rise, delay_fall = u.fall
		FROM delay_updates AS u
		WHERE edges.src = u.pin`

	outgoingEdgesSQL = `SELECT src, dst, COALESCE(delay_rise, 0), COALESCE(delay_fall, 0)
		FROM edges WHERE src = ? ORDER BY rowid`
	allEdgesSQL = `SELECT src, dst, COALESCE(delay_rise, 0), COALESCE(delay_fall, 0)
		FROM edges ORDER BY rowid`

	countNodesSQL     = `SELECT COUNT(*) FROM nodes`
	countEdgesSQL     = `SELECT COUNT(*) FROM edges`
	countAnnotatedSQL = `SELECT COUNT(*) FROM edges WHERE delay_rise != 0 OR delay_fall != 0`
)

// Operation names used in errors, logs and metrics
const (
	opInitialize   = "initialize"
	opSaveNodes    = "save_nodes"
	opSaveEdges    = "save_edges"
	opUpdateDelays = "update_delays"
	opOutgoing     = "outgoing_edges"
	opEdges        = "list_edges"
	opStats        = "stats"
	opSession      = "bulk_session"
	opPath         = "max_delay_path"
)
