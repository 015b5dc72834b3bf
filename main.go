package main

import "asset-inventory/cmd"

func main() {
	cmd.Execute()
}
