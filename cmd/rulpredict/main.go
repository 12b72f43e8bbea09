package main

import (
	"fmt"
	"os"
)

func main() {
	a := newApp(os.Stdout, os.Stderr, os.Getenv)
	err := newRootCmd(a).Execute()
	if ferr := a.finish(); err == nil {
		err = ferr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
