package main

import (
	"os"

	"github.com/yfkiwi/voicefirst/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
