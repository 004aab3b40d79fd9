// Command tasklist serves the task persistence endpoint and manages tasks against it.
package main

import (
	"fmt"
	"os"

	"github.com/ncobase/tasklist/cmd/tasklist/commands"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
