// Package main es el punto de entrada del CLI lmsctl: administración de la academia
// desde la terminal contra el mismo backend que usa la consola.
package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
