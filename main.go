package main

import "github.com/papapumpkin/kundali/cmd"

func main() {
	cmd.Execute()
}
