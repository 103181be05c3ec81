package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS lookups (
    endpoint             TEXT NOT NULL,
    lookup_key           TEXT NOT NULL,
    body                 BLOB NOT NULL,
    fetched_at           TEXT NOT NULL,
    PRIMARY KEY (endpoint, lookup_key)
);

CREATE INDEX IF NOT EXISTS idx_lookups_fetched ON lookups(fetched_at);
`
