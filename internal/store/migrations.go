package store

const createTableSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    snapshot_id     TEXT NOT NULL UNIQUE,
    hostname        TEXT NOT NULL,
    platform        TEXT NOT NULL DEFAULT '',
    record_count    INTEGER NOT NULL DEFAULT 0,
    collected_at    TEXT NOT NULL,
    stored_at       TEXT NOT NULL,
    inventory_json  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_hostname ON snapshots(hostname);
CREATE INDEX IF NOT EXISTS idx_snapshots_collected_at ON snapshots(collected_at);
`
