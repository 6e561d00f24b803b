// Command citeql is a command-line front end for the citation engine,
// for extracting, annotating and resolving citations against files on
// disk without standing up the HTTP server in cmd/server.
package main

import (
	"fmt"
	"os"

	"lexcite/cmd/citeql/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
