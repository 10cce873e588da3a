package main

import "github.com/ryanlidster/slimctl/internal/cli"

func main() {
	cli.Execute()
}
