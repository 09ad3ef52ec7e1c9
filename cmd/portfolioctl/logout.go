package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func logout(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	// The local session is discarded even if the backend cannot be reached to
	// invalidate the server side of it.
	if err := client.Auth().Logout(context.Background()); err != nil {
		fmt.Printf(
			"warning: the backend could not be reached to invalidate the "+
				"session: %s\n",
			err,
		)
	}

	if err := deleteConfig(); err != nil {
		return errors.Wrap(err, "error deleting configuration")
	}

	fmt.Println("Logged out.")

	return nil
}
