// Package main is the entry point for the countrydata CLI.
package main

import (
	"countrydata/cli/cmd"
)

func main() {
	cmd.Execute()
}
