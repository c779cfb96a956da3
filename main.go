package main

import "github.com/ingo/depviz/cmd"

func main() {
	cmd.Execute()
}
