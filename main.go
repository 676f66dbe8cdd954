package main

import "github.com/toanphambk/ts2scl/cmd"

func main() {
	cmd.Execute()
}
