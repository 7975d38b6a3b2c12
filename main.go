package main

import "github.com/khrees2412/jobscout/cmd"

func main() {
	cmd.Execute()
}
