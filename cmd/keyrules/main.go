package main

import (
	"log"

	"github.com/TwigBush/keyrules-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
