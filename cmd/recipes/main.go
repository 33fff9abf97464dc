package main

import (
	"github.com/nataliastanko/recipes-api/pkg/cli"
)

func main() {
	cli.Execute()
}
