package main

import "github.com/itemlens/itemlens/cmd/itemlens/cmd"

func main() {
	cmd.Execute()
}
