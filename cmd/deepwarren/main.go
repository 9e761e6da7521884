// Package main is the single-binary entrypoint for DeepWarren.
package main

import "github.com/deepwarren/deepwarren/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
