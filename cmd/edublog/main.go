package main

import "edublog/cmd/edublog/cmd"

func main() {
	cmd.Execute()
}
