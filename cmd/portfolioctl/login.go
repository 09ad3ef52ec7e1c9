package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"portfolio-gateway/sdk"
)

func login(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(
			"login requires one argument-- the address of the portfolio backend",
		)
	}
	apiAddress := c.Args().First()
	identifier := c.String(flagIdentifier)
	password := c.String(flagPassword)
	if identifier == "" {
		return errors.Errorf(
			"the --%s flag is required to log in",
			flagIdentifier,
		)
	}
	if password == "" {
		return errors.Errorf(
			"the --%s flag is required to log in",
			flagPassword,
		)
	}

	client := sdk.NewClient(apiAddress, "", c.GlobalBool(flagInsecure))
	if err := client.Auth().Login(
		context.Background(),
		identifier,
		password,
	); err != nil {
		return errors.Wrap(err, "error logging in")
	}

	if err := saveConfig(
		&config{
			APIAddress:    apiAddress,
			SessionCookie: client.Auth().SessionCookieValue(),
		},
	); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	fmt.Printf("Logged in as %s.\n", identifier)

	return nil
}
