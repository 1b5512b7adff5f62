package main

import "notecal/cmd"

func main() {
	cmd.Execute()
}
