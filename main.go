package main

import (
	cmd "github.com/nerlens/nerlens/cmd/nerlens"
	"github.com/nerlens/nerlens/internal"
)

var log = internal.GetLogger()

func main() {
	log.Debug("Starting nerlens")
	cmd.Execute()
}
