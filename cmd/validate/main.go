// Command validate smoke-checks a running server by hitting every
// endpoint and reporting unexpected statuses. Useful after deploys:
//
//	validate -base http://localhost:8080
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

type endpoint struct {
	method     string
	path       string
	wantStatus []int
}

var endpoints = []endpoint{
	{http.MethodGet, "/api/health", []int{http.StatusOK}},
	{http.MethodGet, "/dashboard", []int{http.StatusOK}},
	{http.MethodGet, "/dashboard/categories", []int{http.StatusOK}},
	{http.MethodGet, "/dashboard/categories?range=7d&sort=name&order=asc", []int{http.StatusOK}},
	{http.MethodGet, "/dashboard/categories?chart=pie", []int{http.StatusOK}},
	{http.MethodGet, "/dashboard/series", []int{http.StatusOK}},
	{http.MethodGet, "/dashboard/series?range=1y&granularity=weekly", []int{http.StatusOK}},
	{http.MethodGet, "/dashboard/anomalies", []int{http.StatusOK}},
	{http.MethodGet, "/dashboard/alerts", []int{http.StatusOK}},
	{http.MethodGet, "/dashboard/recommendations", []int{http.StatusOK}},
	{http.MethodGet, "/reports", []int{http.StatusOK}},
	{http.MethodGet, "/reports/validate-missing-report", []int{http.StatusNotFound}},
}

func main() {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	client := &http.Client{Timeout: *timeout}
	failures := 0

	for _, ep := range endpoints {
		if err := validateEndpoint(client, *base, ep); err != nil {
			fmt.Printf("FAIL %-6s %-55s %v\n", ep.method, ep.path, err)
			failures++
			continue
		}
		fmt.Printf("ok   %-6s %s\n", ep.method, ep.path)
	}

	if failures > 0 {
		fmt.Printf("\n%d of %d endpoints failed\n", failures, len(endpoints))
		os.Exit(1)
	}
	fmt.Printf("\nall %d endpoints ok\n", len(endpoints))
}

func validateEndpoint(client *http.Client, base string, ep endpoint) error {
	req, err := http.NewRequest(ep.method, base+ep.path, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	for _, want := range ep.wantStatus {
		if resp.StatusCode == want {
			return nil
		}
	}
	return fmt.Errorf("status %d, want one of %v", resp.StatusCode, ep.wantStatus)
}
