package main

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"portfolio-gateway/internal/file"
)

type config struct {
	APIAddress    string `json:"apiAddress"`
	SessionCookie string `json:"sessionCookie"`
}

func getConfig() (*config, error) {
	portfolioHome, err := getPortfolioHome()
	if err != nil {
		return nil, errors.Wrapf(err, "error finding portfolio home")
	}
	portfolioConfigFile := path.Join(portfolioHome, "config")
	if !file.Exists(portfolioConfigFile) {
		return nil, errors.Errorf(
			"no portfolio configuration was found at %s; please use "+
				"`portfolioctl login` to continue\n",
			portfolioConfigFile,
		)
	}

	configBytes, err := ioutil.ReadFile(portfolioConfigFile)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error reading portfolio config file at %s",
			portfolioConfigFile,
		)
	}

	config := &config{}
	if err := json.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing portfolio config file at %s",
			portfolioConfigFile,
		)
	}

	return config, nil
}

func saveConfig(config *config) error {
	portfolioHome, err := getPortfolioHome()
	if err != nil {
		return errors.Wrapf(err, "error finding portfolio home")
	}
	if _, err := os.Stat(portfolioHome); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(
				err,
				"error checking for existence of portfolio home at %s",
				portfolioHome,
			)
		}
		// The directory doesn't exist-- create it
		if err := os.MkdirAll(portfolioHome, 0755); err != nil {
			return errors.Wrapf(
				err,
				"error creating portfolio home at %s",
				portfolioHome,
			)
		}
	}
	portfolioConfigFile := path.Join(portfolioHome, "config")

	configBytes, err := json.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	if err :=
		ioutil.WriteFile(portfolioConfigFile, configBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", portfolioConfigFile)
	}
	return nil
}

func deleteConfig() error {
	portfolioHome, err := getPortfolioHome()
	if err != nil {
		return errors.Wrapf(err, "error finding portfolio home")
	}
	portfolioConfigFile := path.Join(portfolioHome, "config")

	if err := os.Remove(portfolioConfigFile); err != nil {
		return errors.Wrap(err, "error deleting configuration")
	}

	return nil
}

func getPortfolioHome() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}

	return path.Join(homeDir, ".portfolio"), nil
}
