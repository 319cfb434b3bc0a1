package main

import (
	"fmt"
	"strings"

	echoapi "github.com/JithuMorrison/OneStop-Web-sub001/apps/api/echo"
	"github.com/JithuMorrison/OneStop-Web-sub001/core"
)

// token issues an API token signed with the configured secret key. Meant for local development.
func (cli *commandLine) token(args []string) error {
	tokenCmd := cli.newFlagSet("token")
	id := tokenCmd.String("id", "", "The user ID (token subject).")
	username := tokenCmd.String("username", "", "The username.")
	email := tokenCmd.String("email", "", "The email address.")
	roles := tokenCmd.String("roles", "", "Comma separated roles; admin roles start with \"admin:\".")
	if err := parse(tokenCmd, args); err != nil {
		return err
	}
	if *id == "" {
		tokenCmd.Usage()
		return errHelp
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	claims := echoapi.NewClaims(core.Identity{ID: *id, Username: *username, Email: *email}, roleList, cli.conf)
	token, err := echoapi.GenerateToken(claims, cli.conf)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cli.out, token)
	return err
}
