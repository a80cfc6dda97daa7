package main

import (
	"github.com/pressly/goose/v3"

	"github.com/edutrack/edutrack/storage/database"
)

var gooseRunFunc = goose.Run // mockable

// migrate passes a goose command through against the embedded migrations;
// args[0] is the command, the rest are its arguments.
func (cli *commandLine) migrate(args []string) error {
	if err := database.SetupGoose(); err != nil {
		return err
	}

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db.DB, "migrations", arguments...)
}
