package main

import (
	"context"
	"log"
	"os"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	log.SetFlags(0)

	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		log.Fatalf("[-] Error: %v", err)
	}
}
