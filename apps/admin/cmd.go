package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/edutrack/edutrack/core/profile"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db          *sqlx.DB
	profileRepo profile.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addprofile -name NAME -email EMAIL [-admin] - create an account; the password is prompted next")
	fmt.Println("  migrate COMMAND [ARGS...] - run a migration command (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addProfileCmd := flag.NewFlagSet("addprofile", flag.ExitOnError)
	addProfileName := addProfileCmd.String("name", "", "The account holder's full name.")
	addProfileEmail := addProfileCmd.String("email", "", "The account's email. The password will be prompted next.")
	addProfileAdmin := addProfileCmd.Bool("admin", false, "Create an admin account instead of a teacher one.")

	switch args[1] {
	case "addprofile":
		if err := addProfileCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addProfileName == "" || *addProfileEmail == "" {
			addProfileCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addProfileCmd.Usage()
			return errHelp
		}
		role := profile.RoleTeacher
		if *addProfileAdmin {
			role = profile.RoleAdmin
		}
		return cli.addProfile(*addProfileName, *addProfileEmail, string(pwd), role)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
