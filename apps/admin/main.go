package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/storage/database"
)

func main() {
	logger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// start CLI
	cli := commandLine{
		conf: conf,
		out:  os.Stdout,
		openDB: func() (*sql.DB, error) {
			if err := database.CreateIfNotExist(conf); err != nil {
				return nil, err
			}
			db, err := database.Open(conf)
			if err != nil {
				return nil, err
			}
			return db.DB, nil
		},
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", describe(err))
		}
		os.Exit(1)
	}
}

// describe lists the fields of validation errors.
func describe(err error) string {
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) || len(vErr.Fields) == 0 {
		return err.Error()
	}
	msg := vErr.Error()
	for _, f := range vErr.Fields {
		msg += fmt.Sprintf("\n  %s: %s", f.Field, f.Error)
	}
	return msg
}
