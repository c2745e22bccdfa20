package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/aussiebroadwan/authgate/internal/authgatectl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := authgatectl.Run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "authgatectl:", err)
		os.Exit(1)
	}
}
