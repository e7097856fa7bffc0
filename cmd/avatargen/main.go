package main

import (
	"context"
	"log"
	"os"

	"github.com/M1DES1/aigenimgtovid/internal/app"
)

func main() {
	ctx := context.Background()
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
