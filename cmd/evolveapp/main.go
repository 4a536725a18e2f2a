package main

import (
	"log"

	"evolveapp-desktop/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(nil).Execute(); err != nil {
		log.Fatalf("evolveapp: %v", err)
	}
}
