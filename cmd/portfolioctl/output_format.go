package main

import (
	"strings"

	"github.com/pkg/errors"
)

func validateOutputFormat(output string) error {
	switch strings.ToLower(output) {
	case "table", "json":
	default:
		return errors.Errorf("%q is not a valid output format", output)
	}
	return nil
}
