package main

import (
	"log"

	"github.com/n200534/socioconnect/internal/transport/http"
)

func main() {
	if err := http.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
