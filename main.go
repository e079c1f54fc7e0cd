package main

import "github.com/CraigKelly/carnet/cmd"

func main() {
	cmd.Execute()
}
