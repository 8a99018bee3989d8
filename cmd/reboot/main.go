package main

import "github.com/drueck/reboot/internal/cli"

func main() {
	cli.Execute()
}
