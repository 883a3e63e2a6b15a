package main

import "github.com/excelaipro/excelaipro/cmd"

func main() {
	cmd.Execute()
}
