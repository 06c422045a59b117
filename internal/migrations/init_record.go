package migrations

import "database/sql"

func initRecordTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TYPE record_kind AS ENUM ('expense', 'payable', 'receivable');

		CREATE TABLE records (
			user_id BIGINT NOT NULL,
			id BIGINT NOT NULL,
			kind record_kind NOT NULL,
			amount NUMERIC NOT NULL,
			currency_unit VARCHAR(32) NOT NULL DEFAULT '',
			counterparty VARCHAR(255) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			raw TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, id)
		);

		CREATE INDEX records_user_id_created_at_idx ON records (user_id, created_at DESC);

		CREATE TABLE user_counters (
			user_id BIGINT PRIMARY KEY,
			last_record_id BIGINT NOT NULL DEFAULT 0
		);
	`)

	return err
}
