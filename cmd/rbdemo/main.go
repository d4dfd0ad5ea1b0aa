package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "rbdemo: %+v\n", err)
		os.Exit(1)
	}
}
