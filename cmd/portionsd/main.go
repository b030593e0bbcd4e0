package main

import "github.com/frp/ssnt-nutrition/internal/cli"

func main() {
	cli.Execute()
}
