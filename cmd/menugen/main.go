// Package main provides the menugen command line tool for generating and
// exporting weekly menus without running the API server
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
