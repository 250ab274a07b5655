package main

import "github.com/tbruckner/dMQ/cmd"

func main() {
	cmd.Execute()
}
