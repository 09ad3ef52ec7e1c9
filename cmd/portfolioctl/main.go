package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"portfolio-gateway/internal/version"
)

func main() {
	app := cli.NewApp()
	app.Name = "portfolioctl"
	app.Usage = "Manage portfolio content from the comfort of a terminal"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  flagsInsecure,
			Usage: "Allow insecure API connections when using TLS",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "login",
			Usage:     "Log in to the portfolio backend",
			ArgsUsage: "API_ADDRESS",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  flagsIdentifier,
					Usage: "The email address or username to log in with",
				},
				cli.StringFlag{
					Name:  flagsPassword,
					Usage: "The password to log in with",
				},
			},
			Action: login,
		},
		{
			Name:   "logout",
			Usage:  "Log out of the portfolio backend",
			Action: logout,
		},
		{
			Name:      "register",
			Usage:     "Register a new user with the portfolio backend",
			ArgsUsage: "API_ADDRESS",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  flagEmail,
					Usage: "The email address for the new user",
				},
				cli.StringFlag{
					Name:  flagUsername,
					Usage: "The username for the new user",
				},
				cli.StringFlag{
					Name:  flagsPassword,
					Usage: "The password for the new user",
				},
			},
			Action: register,
		},
		{
			Name:  "whoami",
			Usage: "Show the currently logged in user",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: whoami,
		},
		experienceCommand,
		projectCommand,
	}
	fmt.Println()
	if err := app.Run(os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		os.Exit(1)
	}
	fmt.Println()
}
