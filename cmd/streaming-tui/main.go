package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/prayujt/distributed-streaming/internal/tui"
)

func main() {
	apiFlag := flag.String("api", "http://localhost:8080", "Base URL of the streaming API")
	flag.Parse()

	if err := tui.Run(*apiFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
