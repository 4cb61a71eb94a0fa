package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"tsv2sql/internal/probe"
)

var (
	flagFile      = flag.String("file", "data.tsv", "Path of the TSV file to sample")
	flagBytes     = flag.Int("bytes", 20000, "Number of bytes to sample from the start of the file")
	flagDelimiter = flag.String("delimiter", "\t", "Field delimiter (single character)")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	delim := '\t'
	if *flagDelimiter != "" {
		if r, _ := utf8.DecodeRuneInString(*flagDelimiter); r != utf8.RuneError {
			delim = r
		}
	}

	res, err := probe.Probe(probe.Options{
		Path:      *flagFile,
		MaxBytes:  *flagBytes,
		Delimiter: delim,
	})
	if err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}

	fmt.Print(res.Render())
	if len(res.Missing) > 0 {
		os.Exit(1)
	}
}
