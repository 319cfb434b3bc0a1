package main

import (
	"database/sql"

	"github.com/trezcool/goose"

	appfs "github.com/JithuMorrison/OneStop-Web-sub001/fs"
)

var gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error { // mockable
	return goose.RunFS(command, db, appfs.FS, dir, args...)
}

func (cli *commandLine) migrate(args []string) error {
	command := "up"
	var arguments []string
	if len(args) > 0 {
		command = args[0]
		arguments = args[1:]
	}

	db, err := cli.openDB()
	if err != nil {
		return err
	}
	if db != nil {
		defer func() { _ = db.Close() }()
	}
	return gooseRunFunc(command, db, appfs.MigrationsDir, arguments...)
}
