package main

import "github.com/notargets/fvhydro/cmd"

func main() {
	cmd.Execute()
}
