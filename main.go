package main

import "github.com/productdevbook/connwatch/cmd"

func main() {
	cmd.Execute()
}
