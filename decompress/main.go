package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fumin/huffarc"
)

var dir = flag.String("C", "", "directory to extract into")
var verbose = flag.Bool("v", false, "verbosity")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [archive]\nThe archive is read from stdin when not named.\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	var src io.Reader = os.Stdin
	if name := flag.Arg(0); name != "" {
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer f.Close()
		src = f
	}
	names, err := huffarc.Decompress(src, huffarc.Dir(*dir))
	if *verbose {
		for _, n := range names {
			log.Printf("%s", n)
		}
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}
