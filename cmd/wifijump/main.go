package main

import (
	"log"

	"github.com/MrSnakeDoc/wifijump/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ wifijump failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ wifijump failed: %v", err)
	}
}
