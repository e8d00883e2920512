// Command cfbtool is a development aid for exercising the cfb package: it
// packs a set of named files into a CFB container and lists the contents
// of an existing one. It is not part of the library's contract.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var root = &cobra.Command{
	Use:           "cfbtool",
	Short:         "Inspect and build MS-CFB compound files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	root.AddCommand(packCmd, listCmd)
}

func main() {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cfbtool:", err)
		os.Exit(1)
	}
}
