package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ethink/ethink/cmd/ethinkd/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(rootCmd.OutOrStderr(), err)
		os.Exit(1)
	}
}
