package main

import "github.com/wisebayes/solstice-scrapegraph/cmd"

func main() {
	cmd.Execute()
}
