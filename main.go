package main

import "github.com/spiralbot/spiralbot/cmd"

func main() {
	cmd.Execute()
}
