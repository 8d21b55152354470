package main

import "scorebook/cmd"

func main() {
	cmd.Execute()
}
