package main

import "github.com/ericmwr/SOP-PR-CALC/internal/command"

func main() {
	command.Execute()
}
