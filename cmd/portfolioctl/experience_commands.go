package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"portfolio-gateway/sdk"
)

var experienceCommand = cli.Command{
	Name:  "experience",
	Usage: "Manage experiences",
	Subcommands: []cli.Command{
		{
			Name:  "list",
			Usage: "List experiences",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  flagPage,
					Usage: "Retrieve the specified page of results",
				},
				cli.IntFlag{
					Name:  flagPageSize,
					Usage: "Retrieve the specified number of results per page",
				},
				cli.StringFlag{
					Name:  flagsQuery,
					Usage: "Narrow results using the specified search term",
				},
				cliFlagOutput,
			},
			Action: experienceList,
		},
		{
			Name:      "get",
			Usage:     "Get an experience",
			ArgsUsage: "EXPERIENCE_ID",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: experienceGet,
		},
		{
			Name:  "create",
			Usage: "Create a new experience",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name: flagsFile,
					Usage: "A JSON file describing the experience to create " +
						"(required)",
				},
			},
			Action: experienceCreate,
		},
		{
			Name:      "update",
			Usage:     "Update an experience",
			ArgsUsage: "EXPERIENCE_ID",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name: flagsFile,
					Usage: "A JSON file describing the updated experience " +
						"(required)",
				},
			},
			Action: experienceUpdate,
		},
		{
			Name:      "delete",
			Usage:     "Delete an experience",
			ArgsUsage: "EXPERIENCE_ID",
			Action:    experienceDelete,
		},
		{
			Name:      "publish",
			Usage:     "Publish an experience to the public timeline",
			ArgsUsage: "EXPERIENCE_ID",
			Action:    experiencePublish,
		},
		{
			Name:      "unpublish",
			Usage:     "Remove an experience from the public timeline",
			ArgsUsage: "EXPERIENCE_ID",
			Action:    experienceUnpublish,
		},
	},
}

func experienceList(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	experiences, err := client.Experiences().List(
		context.Background(),
		sdk.ExperiencesSelector{
			Page:     c.Int(flagPage),
			PageSize: c.Int(flagPageSize),
			Query:    c.String(flagQuery),
		},
	)
	if err != nil {
		return errors.Wrap(err, "error retrieving experiences")
	}

	if len(experiences.Items) == 0 {
		fmt.Println("No experiences found.")
		return nil
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "COMPANY", "ROLE", "START", "END", "PUBLISHED")
		for _, experience := range experiences.Items {
			endDate := "current"
			if experience.EndDate != nil {
				endDate = *experience.EndDate
			}
			table.AddRow(
				experience.ID,
				experience.Company,
				experience.Role,
				experience.StartDate,
				endDate,
				experience.Published,
			)
		}
		fmt.Println(table)
		fmt.Printf(
			"\nPage %d of %d (%d total)\n",
			experiences.Page,
			experiences.TotalPages,
			experiences.Total,
		)

	case "json":
		responseJSON, err := json.MarshalIndent(experiences, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list experiences",
			)
		}
		fmt.Println(string(responseJSON))
	}

	return nil
}

func experienceGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(
			"experience get requires one argument-- an experience ID",
		)
	}
	id := c.Args().First()
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	experience, err := client.Experiences().Get(context.Background(), id)
	if err != nil {
		return errors.Wrapf(err, "error retrieving experience %q", id)
	}

	switch strings.ToLower(output) {
	case "table":
		endDate := "current"
		if experience.EndDate != nil {
			endDate = *experience.EndDate
		}
		table := uitable.New()
		table.AddRow("ID", "COMPANY", "ROLE", "START", "END", "PUBLISHED")
		table.AddRow(
			experience.ID,
			experience.Company,
			experience.Role,
			experience.StartDate,
			endDate,
			experience.Published,
		)
		fmt.Println(table)

	case "json":
		responseJSON, err := json.MarshalIndent(experience, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting output from get experience")
		}
		fmt.Println(string(responseJSON))
	}

	return nil
}

func experienceCreate(c *cli.Context) error {
	filename := c.String(flagFile)
	if filename == "" {
		return errors.Errorf(
			"the --%s flag is required to create an experience",
			flagFile,
		)
	}

	experienceBytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "error reading experience file %s", filename)
	}
	experience := sdk.Experience{}
	if err := json.Unmarshal(experienceBytes, &experience); err != nil {
		return errors.Wrapf(err, "error parsing experience file %s", filename)
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	experience, err = client.Experiences().Create(
		context.Background(),
		experience,
	)
	if err != nil {
		return errors.Wrap(err, "error creating experience")
	}

	fmt.Printf("Created experience %q.\n", experience.ID)

	return nil
}

func experienceUpdate(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(
			"experience update requires one argument-- an experience ID",
		)
	}
	id := c.Args().First()
	filename := c.String(flagFile)
	if filename == "" {
		return errors.Errorf(
			"the --%s flag is required to update an experience",
			flagFile,
		)
	}

	experienceBytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "error reading experience file %s", filename)
	}
	experience := sdk.Experience{}
	if err := json.Unmarshal(experienceBytes, &experience); err != nil {
		return errors.Wrapf(err, "error parsing experience file %s", filename)
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	if _, err = client.Experiences().Update(
		context.Background(),
		id,
		experience,
	); err != nil {
		return errors.Wrapf(err, "error updating experience %q", id)
	}

	fmt.Printf("Updated experience %q.\n", id)

	return nil
}

func experienceDelete(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New(
			"experience delete requires one argument-- an experience ID",
		)
	}
	id := c.Args().First()

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	if err := client.Experiences().Delete(context.Background(), id); err != nil {
		return errors.Wrapf(err, "error deleting experience %q", id)
	}

	fmt.Printf("Deleted experience %q.\n", id)

	return nil
}

func experiencePublish(c *cli.Context) error {
	return experienceSetPublished(c, true)
}

func experienceUnpublish(c *cli.Context) error {
	return experienceSetPublished(c, false)
}

func experienceSetPublished(c *cli.Context, published bool) error {
	if c.NArg() != 1 {
		return errors.New(
			"this command requires one argument-- an experience ID",
		)
	}
	id := c.Args().First()

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	if _, err := client.Experiences().SetPublished(
		context.Background(),
		id,
		published,
	); err != nil {
		return errors.Wrapf(err, "error updating experience %q", id)
	}

	if published {
		fmt.Printf("Published experience %q.\n", id)
	} else {
		fmt.Printf("Unpublished experience %q.\n", id)
	}

	return nil
}
