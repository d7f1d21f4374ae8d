// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import "github.com/rubenv/sql-migrate"

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1_runs",
			Up: []string{
				`CREATE TABLE runs (
					id TEXT PRIMARY KEY NOT NULL,
					started DATETIME NOT NULL,
					folder TEXT NOT NULL,
					processed INTEGER NOT NULL
				)`,
			},
			Down: []string{`DROP TABLE runs`},
		},
		{
			Id: "2_correspondents",
			Up: []string{
				`CREATE TABLE correspondents (
					runid TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
					rank INTEGER NOT NULL,
					email TEXT NOT NULL,
					name TEXT NOT NULL,
					type TEXT NOT NULL,
					account TEXT NOT NULL,
					contactcount INTEGER NOT NULL,
					latestcontact TEXT,
					own BOOLEAN NOT NULL,
					PRIMARY KEY (runid, rank)
				)`,
				`CREATE INDEX correspondents_email ON correspondents(email)`,
			},
			Down: []string{`DROP TABLE correspondents`},
		},
	},
}
