/*
	Copyright 2023 Markus Papenbrock
*/

package main

import "github.com/mpapenbr/accstats/cmd"

func main() {
	cmd.Execute()
}
