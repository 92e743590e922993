package main

import "github.com/averin/planday/cmd"

func main() {
	cmd.Execute()
}
