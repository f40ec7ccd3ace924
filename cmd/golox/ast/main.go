package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"golox/internal"
)

type stdPrinter struct{}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Println(a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(w, format, a...)
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return fmt.Fprintln(w, a...)
}

func main() {
	argsWithoutProg := os.Args[1:]

	if len(argsWithoutProg) != 1 {
		fmt.Println("Usage: ast /path/to/source.lox")
		os.Exit(64)
	}

	b, err := ioutil.ReadFile(argsWithoutProg[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(74)
	}

	if !internal.PrintTree(string(b), stdPrinter{}) {
		os.Exit(65)
	}
}
