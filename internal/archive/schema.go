package archive

import (
	"database/sql"

	"codeberg.org/veland/scrubmon/internal/errors"
)

// initSchema creates the readings table. The identity primary key mirrors
// the in-memory dedup rule, so replaying a batch upserts rather than
// duplicating.
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS readings (
            identity    TEXT PRIMARY KEY,
            channel     TEXT NOT NULL,
            timestamp   INTEGER NOT NULL,
            co2         REAL,
            temperature REAL,
            humidity    REAL,
            mode        INTEGER
        );
        CREATE INDEX IF NOT EXISTS idx_readings_timestamp
            ON readings (timestamp);
    `)
	if err != nil {
		return errors.New().Wrap(ErrSchemaInitFailed, err)
	}

	return nil
}

const insertReadingSQL = `
    INSERT INTO readings (
        identity, channel, timestamp, co2, temperature, humidity, mode
    ) VALUES (?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT(identity) DO UPDATE SET
        channel = excluded.channel,
        timestamp = excluded.timestamp,
        co2 = excluded.co2,
        temperature = excluded.temperature,
        humidity = excluded.humidity,
        mode = excluded.mode
`

const selectRangeSQL = `
    SELECT identity, channel, timestamp, co2, temperature, humidity, mode
    FROM readings
    WHERE timestamp >= ? AND timestamp <= ?
    ORDER BY timestamp ASC, identity ASC
`
