// Command schemagen writes the JSON schema for the kdbg configuration
// file. It runs via go:generate from the config package directory.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/schema"
)

func main() {
	outFile := flag.String("o", config.SchemaFileName, "Output file for the generated schema")
	flag.Parse()

	gen := schema.NewGenerator(config.New(),
		"github.com/kdbg-dev/kdbg/pkg/config",
	)

	jsData, err := gen.Generate()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
