package main

import (
	"embed"
	"log"

	"evolveapp-desktop/internal/cli"
)

//go:embed all:frontend
var appAssets embed.FS

func main() {
	if err := cli.NewRootCommand(appAssets).Execute(); err != nil {
		log.Fatalf("evolveapp: %v", err)
	}
}
