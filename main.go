package main

import "dependency-manager/cmd"

func main() {
	cmd.Execute()
}
