package main

import (
	"fmt"
	"os"

	"photocontest/internal/archcheck"
)

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	violations, err := archcheck.Check(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boundary check failed: %v\n", err)
		os.Exit(2)
	}
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}
	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s\n", v)
	}
	os.Exit(1)
}
