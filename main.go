package main

import "funcplot/internal/commands"

func main() {
	commands.Execute()
}
