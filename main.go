package main

import (
	"os"

	"github.com/simplejavamail/rfcpicker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
