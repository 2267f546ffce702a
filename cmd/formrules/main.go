package main

import "github.com/km-arc/go-formrules/cmd/formrules/cmd"

func main() {
	cmd.Execute()
}
