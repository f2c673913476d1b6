package main

import "github.com/jsphweid/capo/cmd"

func main() {
	cmd.Execute()
}
