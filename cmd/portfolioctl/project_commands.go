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

var projectCommand = cli.Command{
	Name:  "project",
	Usage: "Manage projects",
	Subcommands: []cli.Command{
		{
			Name:  "list",
			Usage: "List projects",
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
			Action: projectList,
		},
		{
			Name:      "get",
			Usage:     "Get a project",
			ArgsUsage: "PROJECT_ID",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: projectGet,
		},
		{
			Name:  "create",
			Usage: "Create a new project",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name: flagsFile,
					Usage: "A JSON file describing the project to create " +
						"(required)",
				},
			},
			Action: projectCreate,
		},
		{
			Name:      "update",
			Usage:     "Update a project",
			ArgsUsage: "PROJECT_ID",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name: flagsFile,
					Usage: "A JSON file describing the updated project " +
						"(required)",
				},
			},
			Action: projectUpdate,
		},
		{
			Name:      "delete",
			Usage:     "Delete a project",
			ArgsUsage: "PROJECT_ID",
			Action:    projectDelete,
		},
		{
			Name:      "publish",
			Usage:     "Publish a project to the public showcase",
			ArgsUsage: "PROJECT_ID",
			Action:    projectPublish,
		},
		{
			Name:      "unpublish",
			Usage:     "Remove a project from the public showcase",
			ArgsUsage: "PROJECT_ID",
			Action:    projectUnpublish,
		},
	},
}

func projectList(c *cli.Context) error {
	output := c.String(flagOutput)
	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	projects, err := client.Projects().List(
		context.Background(),
		sdk.ProjectsSelector{
			Page:     c.Int(flagPage),
			PageSize: c.Int(flagPageSize),
			Query:    c.String(flagQuery),
		},
	)
	if err != nil {
		return errors.Wrap(err, "error retrieving projects")
	}

	if len(projects.Items) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "TITLE", "SLUG", "FEATURED", "PUBLISHED")
		for _, project := range projects.Items {
			table.AddRow(
				project.ID,
				project.Title,
				project.Slug,
				project.Featured,
				project.Published,
			)
		}
		fmt.Println(table)
		fmt.Printf(
			"\nPage %d of %d (%d total)\n",
			projects.Page,
			projects.TotalPages,
			projects.Total,
		)

	case "json":
		responseJSON, err := json.MarshalIndent(projects, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting output from list projects")
		}
		fmt.Println(string(responseJSON))
	}

	return nil
}

func projectGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("project get requires one argument-- a project ID")
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

	project, err := client.Projects().Get(context.Background(), id)
	if err != nil {
		return errors.Wrapf(err, "error retrieving project %q", id)
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "TITLE", "SLUG", "FEATURED", "PUBLISHED")
		table.AddRow(
			project.ID,
			project.Title,
			project.Slug,
			project.Featured,
			project.Published,
		)
		fmt.Println(table)

	case "json":
		responseJSON, err := json.MarshalIndent(project, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting output from get project")
		}
		fmt.Println(string(responseJSON))
	}

	return nil
}

func projectCreate(c *cli.Context) error {
	filename := c.String(flagFile)
	if filename == "" {
		return errors.Errorf(
			"the --%s flag is required to create a project",
			flagFile,
		)
	}

	projectBytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "error reading project file %s", filename)
	}
	project := sdk.Project{}
	if err := json.Unmarshal(projectBytes, &project); err != nil {
		return errors.Wrapf(err, "error parsing project file %s", filename)
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	project, err = client.Projects().Create(context.Background(), project)
	if err != nil {
		return errors.Wrap(err, "error creating project")
	}

	fmt.Printf("Created project %q.\n", project.ID)

	return nil
}

func projectUpdate(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("project update requires one argument-- a project ID")
	}
	id := c.Args().First()
	filename := c.String(flagFile)
	if filename == "" {
		return errors.Errorf(
			"the --%s flag is required to update a project",
			flagFile,
		)
	}

	projectBytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "error reading project file %s", filename)
	}
	project := sdk.Project{}
	if err := json.Unmarshal(projectBytes, &project); err != nil {
		return errors.Wrapf(err, "error parsing project file %s", filename)
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	if _, err = client.Projects().Update(
		context.Background(),
		id,
		project,
	); err != nil {
		return errors.Wrapf(err, "error updating project %q", id)
	}

	fmt.Printf("Updated project %q.\n", id)

	return nil
}

func projectDelete(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("project delete requires one argument-- a project ID")
	}
	id := c.Args().First()

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	if err := client.Projects().Delete(context.Background(), id); err != nil {
		return errors.Wrapf(err, "error deleting project %q", id)
	}

	fmt.Printf("Deleted project %q.\n", id)

	return nil
}

func projectPublish(c *cli.Context) error {
	return projectSetPublished(c, true)
}

func projectUnpublish(c *cli.Context) error {
	return projectSetPublished(c, false)
}

func projectSetPublished(c *cli.Context, published bool) error {
	if c.NArg() != 1 {
		return errors.New("this command requires one argument-- a project ID")
	}
	id := c.Args().First()

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting portfolio client")
	}

	if _, err := client.Projects().SetPublished(
		context.Background(),
		id,
		published,
	); err != nil {
		return errors.Wrapf(err, "error updating project %q", id)
	}

	if published {
		fmt.Printf("Published project %q.\n", id)
	} else {
		fmt.Printf("Unpublished project %q.\n", id)
	}

	return nil
}
