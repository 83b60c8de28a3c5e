package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Load generator for the backoffice API. Degraded-mode behavior is the
// interesting part: run it once against a healthy remote service and once
// with the remote stopped to compare throughput and error mix.

type stats struct {
	total        int64
	success      int64
	failed       int64
	totalLatency int64
	errors       sync.Map
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "backoffice base URL")
	requests := flag.Int("requests", 1000, "total number of requests")
	concurrency := flag.Int("concurrency", 10, "parallel requests")
	operation := flag.String("operation", "mixed", "operation: create, get, list, status, mixed")
	flag.Parse()

	fmt.Printf("load test: %s op=%s requests=%d concurrency=%d\n",
		*baseURL, *operation, *requests, *concurrency)

	st := &stats{}
	client := &http.Client{Timeout: 10 * time.Second}

	// Seed orders so get/status/mixed have ids to work with.
	var ids []string
	if *operation != "create" && *operation != "list" {
		for i := 0; i < 50; i++ {
			if id := createOrder(client, *baseURL, st); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			fmt.Println("could not seed any orders, aborting")
			return
		}
	}

	start := time.Now()
	var wg sync.WaitGroup
	sem := make(chan struct{}, *concurrency)

	for i := 0; i < *requests; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(n int) {
			defer wg.Done()
			defer func() { <-sem }()

			switch pick(*operation, n) {
			case "create":
				createOrder(client, *baseURL, st)
			case "get":
				doRequest(client, http.MethodGet, *baseURL+"/orders/"+ids[n%len(ids)], nil, st)
			case "list":
				doRequest(client, http.MethodGet, *baseURL+"/orders", nil, st)
			case "status":
				body := map[string]string{"status": "Processing"}
				doRequest(client, http.MethodPatch, *baseURL+"/orders/"+ids[n%len(ids)]+"/status", body, st)
			}
		}(i)
	}
	wg.Wait()

	report(st, time.Since(start))
}

func pick(operation string, n int) string {
	if operation != "mixed" {
		return operation
	}
	switch n % 10 {
	case 0, 1, 2:
		return "create"
	case 3, 4, 5, 6:
		return "get"
	case 7, 8:
		return "list"
	default:
		return "status"
	}
}

func createOrder(client *http.Client, baseURL string, st *stats) string {
	payload := map[string]any{
		"customerId": fmt.Sprintf("cust-%d", time.Now().UnixNano()%100),
		"productId":  fmt.Sprintf("prod-%d", time.Now().UnixNano()%100),
		"quantity":   3,
		"unitPrice":  19.99,
		"status":     "Submitted",
	}
	body := doRequest(client, http.MethodPost, baseURL+"/orders", payload, st)
	if body == nil {
		return ""
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return ""
	}
	return out.ID
}

func doRequest(client *http.Client, method, url string, payload any, st *stats) []byte {
	start := time.Now()
	atomic.AddInt64(&st.total, 1)

	var reqBody io.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		recordError(st, err)
		return nil
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		recordError(st, err)
		return nil
	}
	defer resp.Body.Close()

	atomic.AddInt64(&st.totalLatency, time.Since(start).Milliseconds())
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		atomic.AddInt64(&st.success, 1)
		return body
	}
	recordError(st, fmt.Errorf("HTTP %d", resp.StatusCode))
	return nil
}

func recordError(st *stats, err error) {
	atomic.AddInt64(&st.failed, 1)
	val, _ := st.errors.LoadOrStore(err.Error(), new(int64))
	atomic.AddInt64(val.(*int64), 1)
}

func report(st *stats, elapsed time.Duration) {
	total := atomic.LoadInt64(&st.total)
	success := atomic.LoadInt64(&st.success)
	failed := atomic.LoadInt64(&st.failed)

	fmt.Printf("\ntotal=%d success=%d failed=%d elapsed=%v rps=%.1f\n",
		total, success, failed, elapsed, float64(total)/elapsed.Seconds())
	if total > 0 {
		fmt.Printf("avg latency: %dms\n", atomic.LoadInt64(&st.totalLatency)/total)
	}
	st.errors.Range(func(key, value any) bool {
		fmt.Printf("  [%d] %s\n", atomic.LoadInt64(value.(*int64)), key.(string))
		return true
	})
}
