package main

import (
	_ "embed"

	"github.com/haierkeys/bitshared-cli/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
