package main

import "github.com/theirongolddev/crease/cmd"

func main() {
	cmd.Execute()
}
