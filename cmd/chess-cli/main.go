package main

import (
	"flag"
	"log"
	"os"

	"github.com/luckwei/chess/internal/cli"
	"github.com/luckwei/chess/internal/storage"
)

var dbDir = flag.String("db", "", "database directory (default: platform data dir)")

func main() {
	flag.Parse()

	// Open persistence; the command loop still works without it.
	var store *storage.Store
	var err error
	if *dbDir != "" {
		store, err = storage.Open(*dbDir)
	} else {
		store, err = storage.OpenDefault()
	}
	if err != nil {
		log.Printf("Warning: storage unavailable: %v", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	c := cli.New(os.Stdin, os.Stdout, store)
	if err := c.Run(); err != nil {
		log.Fatal(err)
	}
}
