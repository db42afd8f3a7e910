package main

import (
	"os"

	"github.com/mattsolo1/new-homework/cmd"
	hwerrors "github.com/mattsolo1/new-homework/pkg/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		cmd.PrintError(os.Stderr, err)
		os.Exit(hwerrors.ExitCode(err))
	}
}
