package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfb "github.com/RIPAGlobal/simple-cfb"
)

var packVerbose bool

var packCmd = &cobra.Command{
	Use:   "pack <out.cfb> <name=file>...",
	Short: "Build a CFB container from a set of named files",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPack,
}

func init() {
	packCmd.Flags().BoolVarP(&packVerbose, "verbose", "v", false, "log layout decisions")
}

func runPack(_ *cobra.Command, args []string) error {
	logger := zap.NewNop()
	if packVerbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer l.Sync() //nolint:errcheck
		logger = l
	}

	out := args[0]
	cf := cfb.New(cfb.WithLogger(logger))

	for _, pair := range args[1:] {
		name, path, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("argument %q is not of the form name=file", pair)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := cf.Add("/"+name, content); err != nil {
			return fmt.Errorf("adding %q: %w", name, err)
		}
	}

	return os.WriteFile(out, cf.Write(), 0o644)
}
