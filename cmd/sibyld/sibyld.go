package main

import (
	"math/rand"
	"time"

	"github.com/sibylline/sibyl/internal/sibyld"
)

func main() {
	rand.New(rand.NewSource(time.Now().UTC().UnixNano()))

	sibyld.NewApp("sibyld").Run()
}
