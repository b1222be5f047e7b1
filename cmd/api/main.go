package main

import (
	"context"
	"log"

	"ballot/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (runtime + ports + adapters + use cases).
// 3) Start HTTP server plus the in-process outbox relay.
func main() {
	log.Println("ballot api starting")
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("ballot api stopped with error: %v", err)
	}
}
