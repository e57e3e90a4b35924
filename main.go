package main

import "sodeep/cmd"

func main() {
	cmd.Execute()
}
