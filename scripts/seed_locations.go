// seed_locations.go loads locations from a YAML file and upserts them through the Sourcing API.
//
// Usage:
//
//	go run scripts/seed_locations.go -file locations.yaml -api http://localhost:8700 -token $SOURCING_ADMIN_TOKEN
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

type location struct {
	ID         int64             `yaml:"id"`
	Name       string            `yaml:"name"`
	Attributes map[string]string `yaml:"attributes"`
}

type locationBody struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes"`
}

func main() {
	path := flag.String("file", "locations.yaml", "path to locations YAML file")
	apiURL := flag.String("api", "http://localhost:8700", "Sourcing API base URL")
	token := flag.String("token", os.Getenv("SOURCING_ADMIN_TOKEN"), "admin bearer token")
	dryRun := flag.Bool("dry-run", false, "print locations without sending")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("read %s: %v", *path, err)
	}
	var doc struct {
		Locations []location `yaml:"locations"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Fatalf("parse %s: %v", *path, err)
	}

	log.Printf("parsed %d locations from %s", len(doc.Locations), *path)

	if *dryRun {
		for i, l := range doc.Locations {
			keys := make([]string, 0, len(l.Attributes))
			for k := range l.Attributes {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Printf("[%d] %d %s attributes=%v\n", i+1, l.ID, l.Name, keys)
		}
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	upserted, skipped := 0, 0
	for _, l := range doc.Locations {
		if l.ID <= 0 {
			log.Printf("skip %q: id must be positive", l.Name)
			skipped++
			continue
		}
		if l.Attributes == nil {
			l.Attributes = map[string]string{}
		}
		body, _ := json.Marshal(locationBody{Name: l.Name, Attributes: l.Attributes})
		req, err := http.NewRequest("PUT", fmt.Sprintf("%s/api/v1/locations/%d", *apiURL, l.ID), bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %d: %v", l.ID, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-ID", "seed")
		if *token != "" {
			req.Header.Set("Authorization", "Bearer "+*token)
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %d: %v", l.ID, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			upserted++
		} else {
			log.Printf("skip %d: status %d", l.ID, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d upserted, %d skipped", upserted, skipped)
}
