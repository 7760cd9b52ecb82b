// seed_matrix.go: standalone script that loads criteria from a CSV file into a running matrix server.
//
// Each non-comment line is name,weight,A,B,I,N. The server's current criteria are
// removed first, so the file becomes the whole matrix. Any failed request aborts
// the run.
//
// Usage:
//
//	go run scripts/seed_matrix.go -file criteria.csv -api http://localhost:8700 -client seeder
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/MikeSquared-Agency/Matrix/internal/client"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

func main() {
	path := flag.String("file", "criteria.csv", "path to CSV file (name,weight,A,B,I,N)")
	apiURL := flag.String("api", "http://localhost:8700", "matrix API base URL")
	clientID := flag.String("client", "seeder", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print rows without calling the API")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open %s: %v", *path, err)
	}
	defer f.Close()

	rows, err := client.ParseRows(f)
	if err != nil {
		log.Fatalf("parse %s: %v", *path, err)
	}
	log.Printf("parsed %d rows from %s", len(rows), *path)

	if *dryRun {
		for i, r := range rows {
			fmt.Printf("[%d] %s weight=%d A=%d B=%d I=%d N=%d\n",
				i+1, r.Name, r.Weight, r.Scores[scoring.OptionA], r.Scores[scoring.OptionB], r.Scores[scoring.OptionI], r.Scores[scoring.OptionN])
		}
		return
	}

	c := client.NewHTTPClient(*apiURL, *clientID, "")
	if err := c.ReplaceCriteria(context.Background(), rows); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("done: %d criteria seeded", len(rows))
}
