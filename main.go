package main

import (
	"log"

	"github.com/hsinyuc/talentsift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
