package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"portfolio-gateway/sdk"
)

func register(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(
			"register requires one argument-- the address of the portfolio " +
				"backend",
		)
	}
	apiAddress := c.Args().First()
	email := c.String(flagEmail)
	username := c.String(flagUsername)
	password := c.String(flagPassword)
	if email == "" || username == "" || password == "" {
		return errors.Errorf(
			"the --%s, --%s, and --%s flags are all required to register",
			flagEmail,
			flagUsername,
			flagPassword,
		)
	}

	client := sdk.NewClient(apiAddress, "", c.GlobalBool(flagInsecure))
	if err := client.Auth().Register(
		context.Background(),
		sdk.Registration{
			Email:           email,
			Username:        username,
			Password:        password,
			ConfirmPassword: password,
		},
	); err != nil {
		return errors.Wrap(err, "error registering")
	}

	fmt.Printf(
		"Registered %s. Use `portfolioctl login` to log in.\n",
		username,
	)

	return nil
}
