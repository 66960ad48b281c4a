package main

import "github.com/docbridge/docbridge/cmd"

func main() {
	cmd.Execute()
}
