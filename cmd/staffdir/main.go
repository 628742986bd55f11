package main

import "github.com/mcoot/staffdir/internal/cli"

func main() {
	cli.Execute()
}
