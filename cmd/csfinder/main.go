package main

import (
	"log"

	"github.com/MrSnakeDoc/csfinder/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ csfinder failed to start: %v", err)
	}
}
