package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"golox/internal"
)

const source = `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 2) + fib(n - 1);
}
print fib(%d);
`

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

func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-2) + fib(n-1)
}

func main() {
	n := flag.Int("n", 25, "fib argument")
	flag.Parse()

	start := time.Now()
	fmt.Println(fib(*n))
	native := time.Since(start)

	start = time.Now()
	internal.RunSource(fmt.Sprintf(source, *n), stdPrinter{})
	interpreted := time.Since(start)

	fmt.Println("Native:", native)
	fmt.Println("Interpreted:", interpreted)
	if native > 0 {
		fmt.Printf("Ratio: %.0fx\n", float64(interpreted)/float64(native))
	}
}
