package main

import (
	"github.com/bloxfund/donation-proxy/cmd"
)

func main() {
	cmd.Execute()
}
