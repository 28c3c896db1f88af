package main

import "wisp/cmd"

func main() {
	cmd.Execute()
}
