package main

import "github.com/scalarlabs/scalar-terminal/cmd"

func main() {
	cmd.Execute()
}
