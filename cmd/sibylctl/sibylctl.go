package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/sibylline/sibyl/internal/sibylctl/cmd"
)

func main() {
	rand.New(rand.NewSource(time.Now().UnixNano()))

	command := cmd.NewDefaultSibylCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
