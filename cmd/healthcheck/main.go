// Package main provides a container health probe. It hits the server's
// liveness endpoint and reports through the exit code, so images need no
// curl or wget.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hsrw-ise/advisor-go/internal/config"
)

func main() {
	port := os.Getenv(config.EnvPort)
	if port == "" {
		port = "10000"
	}

	client := &http.Client{Timeout: 8 * time.Second}
	url := fmt.Sprintf("http://localhost:%s/healthz", port)

	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}

	os.Exit(0)
}
