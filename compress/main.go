package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fumin/huffarc"
)

var dir = flag.String("C", "", "directory the input files are relative to")
var verbose = flag.Bool("v", false, "verbosity")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] archive file1 [file2 ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Create(flag.Arg(0))
	if err != nil {
		log.Fatalf("%v", err)
	}
	stats, err := huffarc.Compress(f, huffarc.Dir(*dir), flag.Args()[1:])
	if err != nil {
		f.Close()
		log.Fatalf("%v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("%v", err)
	}

	if *verbose {
		for _, s := range stats {
			log.Printf("%s: %d bytes -> %d bits, %d symbols, longest code %d", s.Name, s.Size, s.Bits, s.Symbols, s.MaxCodeLen)
		}
	}
}
