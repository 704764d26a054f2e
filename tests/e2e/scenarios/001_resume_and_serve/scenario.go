package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"log-stats/internal/app"
	"log-stats/internal/models"
	"log-stats/internal/shared/configs"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalEntries = 64000 // Total number of log lines to generate
	hostCount    = 16    // Distinct client addresses
)

var (
	days       = []string{"2025-12-28", "2025-12-29", "2025-12-30", "2025-12-31"}
	paths      = []string{"/", "/about", "/careers", "/contact"}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"curl/7.88.1",
	}
)

// ### End - fixed configs

// main runs the e2e scenario: 001_resume_and_serve
//
// This scenario ingests a deterministic access log in two steps through the incremental
// cache, then serves the result and queries it concurrently.
//
// What it tests:
//   - Ingestion of the first half of the log into an empty cache
//   - Resuming on the full log: only lines after the cached checkpoint are counted
//   - A third run on the same log counts nothing
//   - The daily series merged across runs, a day split between two runs included
//   - GET /years, /years/{year} and /daily under concurrent requests
//
// Expected results:
//   - 64,000 requests in 2025 over people and bots
//   - The Googlebot quarter of the lines lands in one bot key (its URL)
//   - The daily series has four days whose requests sum to 64,000
func main() {
	// these configs can be changed to run the scenario
	port := 18080             // Port of the report server started by the scenario
	parallel := 8             // Number of concurrent report requests
	requestsPerWorker := 25   // Requests each worker sends
	workDir := ".tmp/e2e-001" // Working directory relative to project root
	wantCleanWorkDir := true  // If true, clean up the working directory before running scenario

	projectRoot, err := findProjectRoot()
	if err != nil {
		fail("%v", err)
	}
	workPath := filepath.Join(projectRoot, workDir)
	if wantCleanWorkDir {
		fmt.Printf("Cleaning working directory: %s\n", workPath)
		if err := os.RemoveAll(workPath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean working directory: %v\n", err)
		}
		fmt.Println()
	}

	fmt.Println("Starting e2e scenario: 001_resume_and_serve")
	fmt.Printf("WORK_PATH: %s\n", workPath)
	fmt.Printf("TOTAL_ENTRIES: %d\n", totalEntries)
	fmt.Printf("PORT: %d\n", port)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Println()

	lines := generateLines()
	// the split falls inside a day, so both runs count part of it
	split := totalEntries/2 + totalEntries/len(days)/2
	half := strings.Join(lines[:split], "\n") + "\n"
	full := strings.Join(lines, "\n") + "\n"

	cfg, err := configs.LoadConfig("", nil)
	if err != nil {
		fail("failed to load config: %v", err)
	}
	cfg.Input.Path = filepath.Join(workPath, "access.log")
	cfg.Output.Dir = filepath.Join(workPath, "out")
	cfg.Cache.BasePath = filepath.Join(workPath, "cache")
	cfg.Geolocation.SampleSize = 0
	cfg.Geolocation.TLDSampleSize = 0
	cfg.Server.Port = port

	ctx := context.Background()
	expectAccepted := []int{split, totalEntries - split, 0}
	for i, input := range []string{half, full, full} {
		if err := os.MkdirAll(workPath, 0o755); err != nil {
			fail("failed to create working directory: %v", err)
		}
		if err := os.WriteFile(cfg.Input.Path, []byte(input), 0o644); err != nil {
			fail("failed to write input: %v", err)
		}
		result, err := runOnce(ctx, cfg)
		if err != nil {
			fail("run %d failed: %v", i+1, err)
		}
		fmt.Printf("Run %d: accepted=%d skipped=%d\n", i+1, result.Ingest.Accepted, result.Ingest.Skipped)
		if result.Ingest.Accepted != expectAccepted[i] {
			fail("run %d accepted %d lines, want %d", i+1, result.Ingest.Accepted, expectAccepted[i])
		}
	}
	fmt.Println()

	// Serve the cached statistics
	application, err := app.New(cfg)
	if err != nil {
		fail("failed to initialize app: %v", err)
	}
	defer application.Close()

	serveCtx, stop := context.WithCancel(ctx)
	served := make(chan error, 1)
	go func() {
		served <- application.Serve(serveCtx)
	}()

	baseURL := fmt.Sprintf("http://localhost:%d", port)
	if err := waitReady(baseURL+"/years", 5*time.Second); err != nil {
		fail("server not ready: %v", err)
	}

	var years struct {
		Years []int `json:"years"`
	}
	if err := getJSON(baseURL+"/years", &years); err != nil {
		fail("GET /years: %v", err)
	}
	if len(years.Years) != 1 || years.Years[0] != 2025 {
		fail("GET /years returned %v, want [2025]", years.Years)
	}

	// Query the report and the daily series concurrently
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errors []error
	var okRequests int64
	for w := 0; w < parallel; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < requestsPerWorker; i++ {
				var err error
				if (worker+i)%2 == 0 {
					err = checkYearReport(baseURL)
				} else {
					err = checkDaily(baseURL)
				}
				if err != nil {
					mu.Lock()
					errors = append(errors, fmt.Errorf("worker %d request %d: %w", worker, i, err))
					mu.Unlock()
					continue
				}
				atomic.AddInt64(&okRequests, 1)
			}
		}(w)
	}
	wg.Wait()

	stop()
	if err := <-served; err != nil {
		fail("server stopped with error: %v", err)
	}

	fmt.Println()
	if len(errors) > 0 {
		for _, err := range errors {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		fail("%d report requests failed", len(errors))
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Report requests: %d\n", atomic.LoadInt64(&okRequests))
	fmt.Printf("Total entries ingested: %d\n", totalEntries)
	fmt.Println("Scenario completed successfully")
}

func runOnce(ctx context.Context, cfg *configs.Config) (*app.RunResult, error) {
	application, err := app.New(cfg)
	if err != nil {
		return nil, err
	}
	defer application.Close()
	return application.Run(ctx)
}

func checkYearReport(baseURL string) error {
	var report models.YearReport
	if err := getJSON(baseURL+"/years/2025?top=5", &report); err != nil {
		return err
	}
	if total := report.People.Requests + report.Bots.Requests; total != totalEntries {
		return fmt.Errorf("report counts %d requests, want %d", total, totalEntries)
	}
	if report.Bots.Keys != 1 {
		return fmt.Errorf("report counts %d bot keys, want 1", report.Bots.Keys)
	}
	if len(report.People.TopByRequests) != 5 {
		return fmt.Errorf("report ranks %d people, want 5", len(report.People.TopByRequests))
	}
	return nil
}

func checkDaily(baseURL string) error {
	var series []models.SimpleDailyStats
	if err := getJSON(baseURL+"/daily", &series); err != nil {
		return err
	}
	if len(series) != len(days) {
		return fmt.Errorf("daily series has %d days, want %d", len(series), len(days))
	}
	total := 0
	for _, day := range series {
		total += day.RequestsCount
	}
	if total != totalEntries {
		return fmt.Errorf("daily series counts %d requests, want %d", total, totalEntries)
	}
	return nil
}

// generateLines spreads the entries evenly over the days, in time order.
func generateLines() []string {
	perDay := totalEntries / len(days)
	step := 24 * time.Hour / time.Duration(perDay)

	lines := make([]string, 0, totalEntries)
	for d, day := range days {
		start, err := time.Parse(models.DateLayout, day)
		if err != nil {
			fail("invalid day %q: %v", day, err)
		}
		for i := 0; i < perDay; i++ {
			n := d*perDay + i
			ts := start.Add(time.Duration(i) * step)
			host := fmt.Sprintf("10.0.%d.%d", n%hostCount/8, n%hostCount+1)
			lines = append(lines, fmt.Sprintf(`%s - - [%s] "GET %s HTTP/1.1" 200 %d "-" "%s"`,
				host, ts.Format(models.LogTimeLayout), paths[n%len(paths)], 512+n%64, userAgents[n/hostCount%len(userAgents)]))
		}
	}
	return lines
}

func getJSON(url string, value any) error {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(value)
}

func waitReady(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			return nil
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// findProjectRoot walks up from the working directory to the directory holding go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("could not find go.mod, run from the project root")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(1)
}
