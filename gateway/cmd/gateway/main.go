package main

import (
	"flag"

	"github.com/golang/glog"

	"portfolio-gateway/internal/version"
)

func main() {
	// We need to parse flags for glog-related options to take effect
	flag.Parse()

	glog.Infof(
		"Starting Portfolio Gateway -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	server, err := getServerFromEnvironment()
	if err != nil {
		glog.Fatal(err)
	}

	glog.Fatal(server.ListenAndServe())
}
