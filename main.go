package main

import "github.com/signalbench/ampbench/cmd"

func main() {
	cmd.Execute()
}
