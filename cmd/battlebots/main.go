package main

import "github.com/mcoot/battlebots/internal/cli"

func main() {
	cli.Execute()
}
