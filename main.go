package main

import "github.com/seyio/leadpilot/cmd"

func main() {
	cmd.Execute()
}
