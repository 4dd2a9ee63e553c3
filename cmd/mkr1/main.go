package main

import "github.com/aalvaropc/mkr1/internal/cli"

func main() {
	cli.Execute()
}
