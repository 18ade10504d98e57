package main

import "busbilet-cli/cmd"

func main() {
	cmd.Execute()
}
