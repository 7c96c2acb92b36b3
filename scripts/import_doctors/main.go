// Command import_doctors bulk loads doctor records from a JSON file into a
// running API instance. Used to seed a fresh database from scraped directory
// dumps.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type importStats struct {
	Total    int
	Created  int
	Failed   int
	Duration time.Duration
}

func main() {
	var (
		input   = flag.String("input", "doctors.json", "path to a JSON array of doctor payloads")
		baseURL = flag.String("base-url", "http://localhost:8080/api/v1", "API base URL")
		dryRun  = flag.Bool("dry-run", false, "parse and validate the input without posting")
	)
	flag.Parse()

	payloads, err := readPayloads(*input)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *input, err)
	}

	if *dryRun {
		fmt.Printf("parsed %d doctor payloads from %s\n", len(payloads), *input)
		return
	}

	client := &http.Client{Timeout: 30 * time.Second}
	start := time.Now()
	stats := importStats{Total: len(payloads)}

	for i, payload := range payloads {
		if err := postDoctor(client, *baseURL, payload); err != nil {
			stats.Failed++
			log.Printf("doctor %d/%d failed: %v", i+1, len(payloads), err)
			continue
		}
		stats.Created++
	}
	stats.Duration = time.Since(start)

	fmt.Printf("imported %d/%d doctors (%d failed) in %s\n", stats.Created, stats.Total, stats.Failed, stats.Duration.Round(time.Millisecond))
	if stats.Failed > 0 {
		os.Exit(1)
	}
}

func readPayloads(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payloads []json.RawMessage
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("input must be a JSON array of doctor objects: %w", err)
	}
	return payloads, nil
}

func postDoctor(client *http.Client, baseURL string, payload json.RawMessage) error {
	resp, err := client.Post(baseURL+"/doctors", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
