package main

import "github.com/playnite-extensions/pext-release/cmd/pext-release/cmd"

func main() {
	cmd.Execute()
}
