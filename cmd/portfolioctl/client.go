package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"portfolio-gateway/sdk"
)

func getClient(c *cli.Context) (sdk.Client, error) {
	config, err := getConfig()
	if err != nil {
		return nil, errors.Wrapf(err, "error retrieving configuration")
	}
	client := sdk.NewClient(
		config.APIAddress,
		"",
		c.GlobalBool(flagInsecure),
	)
	client.Auth().SetSessionCookieValue(config.SessionCookie)
	return client, nil
}
