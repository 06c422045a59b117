package migrations

import "github.com/lopezator/migrator"

var Migrations = []any{
	&migrator.MigrationNoTx{
		Name: "Init record tables",
		Func: initRecordTables,
	},
	&migrator.MigrationNoTx{
		Name: "Init state table",
		Func: initStateTable,
	},
}
