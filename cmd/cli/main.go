package main

import (
	"invoice-matching/cmd/cli/cmd"
)

func main() {
	cmd.Execute()
}
