package main

import "github.com/mtsuei/windowplane/cli/cmd"

func main() {
	cmd.Execute()
}
