package main

import "github.com/querybox-dev/querybox/internal/cli"

func main() {
	cli.Execute()
}
