package main

import "github.com/jjenkins/gazette/cmd"

func main() {
	cmd.Execute()
}
