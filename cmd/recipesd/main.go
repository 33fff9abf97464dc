package main

import (
	"context"
	"log"

	"github.com/nataliastanko/recipes-api/pkg/api"
	"github.com/nataliastanko/recipes-api/pkg/config"
)

func main() {
	cfg, err := config.Load("", config.DefaultEnvFile)
	if err != nil {
		log.Fatal(err)
	}
	if err := api.Serve(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
}
