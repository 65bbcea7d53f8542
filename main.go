package main

import "github.com/taskproof/taskproof/cmd"

func main() {
	cmd.Execute()
}
