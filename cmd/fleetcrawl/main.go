package main

import (
	"github.com/NVIDIA/fleetcrawl/pkg/cli"
)

func main() {
	cli.Execute()
}
