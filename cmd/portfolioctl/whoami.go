package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func whoami(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	user, err := client.Auth().Me(context.Background())
	if err != nil {
		return errors.Wrap(err, "error retrieving current user")
	}
	if user == nil {
		return errors.New(
			"you are not logged in; use `portfolioctl login` to log in",
		)
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "USERNAME", "EMAIL", "ROLE")
		table.AddRow(user.ID, user.Username, user.Email, user.Role)
		fmt.Println(table)

	case "json":
		responseJSON, err := json.MarshalIndent(user, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting output from whoami")
		}
		fmt.Println(string(responseJSON))
	}

	return nil
}
