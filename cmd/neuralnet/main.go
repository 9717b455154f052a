// Package main provides the neuralnet command line tool.
package main

import "github.com/born-ml/neuralnet/internal/cli"

func main() {
	cli.Execute()
}
