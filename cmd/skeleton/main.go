package main

import "github.com/mvp-joe/skeleton/internal/cli"

func main() {
	cli.Execute()
}
