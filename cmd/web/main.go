package main

import (
	"fmt"
	"os"

	"olivepulse/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "application error: %v\n", err)
		os.Exit(1)
	}
}
