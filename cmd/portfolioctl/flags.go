package main

import "github.com/urfave/cli"

const (
	flagEmail       = "email"
	flagFile        = "file"
	flagsFile       = "file, f"
	flagIdentifier  = "identifier"
	flagsIdentifier = "identifier, i"
	flagInsecure    = "insecure"
	flagsInsecure   = "insecure, k"
	flagOutput      = "output"
	flagsOutput     = "output, o"
	flagPage        = "page"
	flagPageSize    = "page-size"
	flagPassword    = "password"
	flagsPassword   = "password, p"
	flagQuery       = "query"
	flagsQuery      = "query, q"
	flagUsername    = "username"
)

var (
	cliFlagOutput = cli.StringFlag{
		Name:  flagsOutput,
		Usage: "Return output in another format. Supported formats: table, json",
		Value: "table",
	}
)
