package main

import "github.com/philipparndt/goruler/cmd"

func main() {
	cmd.Execute()
}
