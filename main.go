package main

import "github.com/notargets/gopennant/cmd"

func main() {
	cmd.Execute()
}
