package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfb "github.com/RIPAGlobal/simple-cfb"
)

var listStrict bool

var listCmd = &cobra.Command{
	Use:   "list <in.cfb>",
	Short: "Print the directory entries of a CFB container",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listStrict, "strict", false, "fail on cross-checked invariant mismatches")
}

func runList(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	validation := cfb.ValidationPermissive
	if listStrict {
		validation = cfb.ValidationStrict
	}

	cf, err := cfb.Parse(f, cfb.WithValidation(validation))
	if err != nil {
		return err
	}

	paths := cf.FullPaths()
	for i, e := range cf.FileIndex() {
		fmt.Printf("%-6s %8d  %s\n", e.Type, e.Size, paths[i])
	}
	return nil
}
