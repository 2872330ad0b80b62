package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agbru/ssfft/internal/config"
	"github.com/agbru/ssfft/internal/service"
)

// stressTestConfig holds configuration for stress tests.
type stressTestConfig struct {
	Concurrency       int           // Number of concurrent goroutines
	RequestsPerClient int           // Requests each goroutine makes
	Timeout           time.Duration // Per-request timeout
	MaxOperand        int64         // Maximum operand magnitude to request
	DelayBetweenReqs  time.Duration // Delay between requests per client
}

func defaultStressConfig() stressTestConfig {
	return stressTestConfig{
		Concurrency:       100,
		RequestsPerClient: 50,
		Timeout:           30 * time.Second,
		MaxOperand:        10000,
	}
}

// stressTestResult holds the results of a stress test.
type stressTestResult struct {
	TotalRequests    int64
	SuccessCount     int64
	ErrorCount       int64
	RateLimitedCount int64
	Duration         time.Duration
	Errors           []string
}

func (r *stressTestResult) RequestsPerSecond() float64 {
	if r.Duration.Seconds() == 0 {
		return 0
	}
	return float64(r.TotalRequests) / r.Duration.Seconds()
}

func (r *stressTestResult) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

// fastStressService is a fast mock multiply service for stress testing.
type fastStressService struct{}

func (fastStressService) Multiply(ctx context.Context, algo string, x, y *big.Int) (*big.Int, error) {
	return new(big.Int).Mul(x, y), nil
}

// slowStressService simulates a slow multiplication.
type slowStressService struct {
	delay time.Duration
}

func (s slowStressService) Multiply(ctx context.Context, algo string, x, y *big.Int) (*big.Int, error) {
	select {
	case <-time.After(s.delay):
		return new(big.Int).Mul(x, y), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// intermittentFailService fails intermittently for testing graceful
// degradation under partial failure.
type intermittentFailService struct {
	failRate float64
	counter  int64
}

func (s *intermittentFailService) Multiply(ctx context.Context, algo string, x, y *big.Int) (*big.Int, error) {
	count := atomic.AddInt64(&s.counter, 1)
	if float64(count%100)/100 < s.failRate {
		return nil, fmt.Errorf("simulated failure")
	}
	return new(big.Int).Mul(x, y), nil
}

// setupStressTestServer creates a test server for stress testing.
func setupStressTestServer(t *testing.T, svc service.Service, rateLimit int) (*httptest.Server, func()) {
	t.Helper()

	cfg := config.AppConfig{Port: "0", Threshold: 4096}

	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerMinute: rateLimit,
		CleanupInterval:   time.Minute,
	})

	srv := NewServer(svc, cfg, WithRateLimiter(rl))
	ts := httptest.NewServer(srv.httpServer.Handler)

	cleanup := func() {
		ts.Close()
		rl.Stop()
	}

	return ts, cleanup
}

func postMultiply(client *http.Client, url string, x, y int64) (*http.Response, error) {
	body, _ := json.Marshal(multiplyRequest{
		X:    fmt.Sprintf("%d", x),
		Y:    fmt.Sprintf("%d", y),
		Algo: "auto",
	})
	return client.Post(url+"/multiply", "application/json", bytes.NewReader(body))
}

// runStressTest executes a stress test with the given configuration.
func runStressTest(t *testing.T, ts *httptest.Server, cfg stressTestConfig) stressTestResult {
	t.Helper()

	var (
		successCount     int64
		errorCount       int64
		rateLimitedCount int64
		wg               sync.WaitGroup
		errorsMu         sync.Mutex
		errs             []string
	)

	start := time.Now()

	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func(clientID int) {
			defer wg.Done()

			client := &http.Client{Timeout: cfg.Timeout}

			for j := 0; j < cfg.RequestsPerClient; j++ {
				x := int64((clientID*cfg.RequestsPerClient + j) % int(cfg.MaxOperand))

				resp, err := postMultiply(client, ts.URL, x, x+1)
				if err != nil {
					atomic.AddInt64(&errorCount, 1)
					errorsMu.Lock()
					if len(errs) < 10 {
						errs = append(errs, err.Error())
					}
					errorsMu.Unlock()
					continue
				}

				switch resp.StatusCode {
				case http.StatusOK:
					var result Response
					if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && result.Error == "" {
						atomic.AddInt64(&successCount, 1)
					} else {
						atomic.AddInt64(&errorCount, 1)
					}
				case http.StatusTooManyRequests:
					atomic.AddInt64(&rateLimitedCount, 1)
				default:
					atomic.AddInt64(&errorCount, 1)
				}

				resp.Body.Close()

				if cfg.DelayBetweenReqs > 0 {
					time.Sleep(cfg.DelayBetweenReqs)
				}
			}
		}(i)
	}

	wg.Wait()
	duration := time.Since(start)

	totalRequests := int64(cfg.Concurrency * cfg.RequestsPerClient)

	return stressTestResult{
		TotalRequests:    totalRequests,
		SuccessCount:     successCount,
		ErrorCount:       errorCount,
		RateLimitedCount: rateLimitedCount,
		Duration:         duration,
		Errors:           errs,
	}
}

// TestServerUnderLoad performs a comprehensive load test on the server.
func TestServerUnderLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping stress test in short mode")
	}

	ts, cleanup := setupStressTestServer(t, fastStressService{}, 100000)
	defer cleanup()

	cfg := defaultStressConfig()
	result := runStressTest(t, ts, cfg)

	t.Logf("Stress Test Results:")
	t.Logf("  Total requests: %d", result.TotalRequests)
	t.Logf("  Successful: %d (%.2f%%)", result.SuccessCount, result.SuccessRate())
	t.Logf("  Errors: %d", result.ErrorCount)
	t.Logf("  Rate limited: %d", result.RateLimitedCount)
	t.Logf("  Duration: %v", result.Duration)
	t.Logf("  Requests/sec: %.2f", result.RequestsPerSecond())

	for i, err := range result.Errors {
		t.Logf("  Error %d: %s", i+1, err)
	}

	errorRate := float64(result.ErrorCount) / float64(result.TotalRequests) * 100
	if errorRate > 1.0 {
		t.Errorf("Error rate too high: %.2f%% (expected < 1%%)", errorRate)
	}
}

// TestServerUnderSustainedLoad tests the server under sustained load over time.
func TestServerUnderSustainedLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping sustained load test in short mode")
	}

	ts, cleanup := setupStressTestServer(t, fastStressService{}, 100000)
	defer cleanup()

	waves := 3
	var totalSuccess, totalErrors int64

	for wave := 0; wave < waves; wave++ {
		cfg := stressTestConfig{
			Concurrency:       50,
			RequestsPerClient: 20,
			Timeout:           10 * time.Second,
			MaxOperand:        5000,
		}

		result := runStressTest(t, ts, cfg)
		totalSuccess += result.SuccessCount
		totalErrors += result.ErrorCount

		t.Logf("Wave %d: %d success, %d errors, %.2f req/s",
			wave+1, result.SuccessCount, result.ErrorCount, result.RequestsPerSecond())

		time.Sleep(100 * time.Millisecond)
	}

	t.Logf("Total across %d waves: %d success, %d errors", waves, totalSuccess, totalErrors)

	if totalErrors > (totalSuccess+totalErrors)/100 {
		t.Errorf("Too many errors across waves: %d/%d", totalErrors, totalSuccess+totalErrors)
	}
}

// TestServerWithSlowCalculations tests behavior when multiplies are slow.
func TestServerWithSlowCalculations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping slow calculation test in short mode")
	}

	ts, cleanup := setupStressTestServer(t, slowStressService{delay: 100 * time.Millisecond}, 100000)
	defer cleanup()

	cfg := stressTestConfig{
		Concurrency:       20,
		RequestsPerClient: 5,
		Timeout:           5 * time.Second,
		MaxOperand:        100,
	}

	result := runStressTest(t, ts, cfg)

	t.Logf("Slow calculation test:")
	t.Logf("  Total: %d, Success: %d, Errors: %d", result.TotalRequests, result.SuccessCount, result.ErrorCount)
	t.Logf("  Duration: %v, RPS: %.2f", result.Duration, result.RequestsPerSecond())

	if result.SuccessRate() < 95.0 {
		t.Errorf("Success rate too low with slow calculations: %.2f%%", result.SuccessRate())
	}
}

// TestServerRateLimitingUnderLoad tests that rate limiting works correctly under load.
func TestServerRateLimitingUnderLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping rate limit test in short mode")
	}

	ts, cleanup := setupStressTestServer(t, fastStressService{}, 10)
	defer cleanup()

	cfg := stressTestConfig{
		Concurrency:       5,
		RequestsPerClient: 10,
		Timeout:           5 * time.Second,
		MaxOperand:        100,
	}

	result := runStressTest(t, ts, cfg)

	t.Logf("Rate limiting under load:")
	t.Logf("  Total: %d, Success: %d, Rate Limited: %d", result.TotalRequests, result.SuccessCount, result.RateLimitedCount)

	if result.RateLimitedCount == 0 {
		t.Error("Expected some requests to be rate limited")
	}
	if result.SuccessCount == 0 {
		t.Error("Expected some successful requests even with rate limiting")
	}
}

// TestServerConcurrentEndpoints tests concurrent access to multiple endpoints.
func TestServerConcurrentEndpoints(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping concurrent endpoints test in short mode")
	}

	ts, cleanup := setupStressTestServer(t, fastStressService{}, 100000)
	defer cleanup()

	var wg sync.WaitGroup
	var successCount, errorCount int64
	client := &http.Client{Timeout: 5 * time.Second}

	hit := func(fn func() (*http.Response, error)) {
		defer wg.Done()
		resp, err := fn()
		if err != nil {
			atomic.AddInt64(&errorCount, 1)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			atomic.AddInt64(&successCount, 1)
		} else if resp.StatusCode != http.StatusTooManyRequests {
			atomic.AddInt64(&errorCount, 1)
		}
	}

	const rounds = 50
	for i := 0; i < rounds; i++ {
		wg.Add(3)
		go hit(func() (*http.Response, error) { return client.Get(ts.URL + "/health") })
		go hit(func() (*http.Response, error) { return client.Get(ts.URL + "/algorithms") })
		go hit(func() (*http.Response, error) { return postMultiply(client, ts.URL, 100, 200) })
	}

	wg.Wait()

	totalRequests := int64(rounds * 3)
	t.Logf("Concurrent endpoints test: %d/%d successful", successCount, totalRequests)

	if errorCount > totalRequests/10 {
		t.Errorf("Too many errors: %d/%d", errorCount, totalRequests)
	}
}

// TestServerGracefulDegradation tests how the server handles partial failures.
func TestServerGracefulDegradation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping graceful degradation test in short mode")
	}

	failingSvc := &intermittentFailService{failRate: 0.1}
	ts, cleanup := setupStressTestServer(t, failingSvc, 100000)
	defer cleanup()

	cfg := stressTestConfig{
		Concurrency:       20,
		RequestsPerClient: 10,
		Timeout:           5 * time.Second,
		MaxOperand:        100,
	}

	result := runStressTest(t, ts, cfg)

	t.Logf("Graceful degradation test:")
	t.Logf("  Total: %d, Success: %d, Errors: %d", result.TotalRequests, result.SuccessCount, result.ErrorCount)

	expectedSuccessRate := 0.80
	if result.SuccessRate() < expectedSuccessRate*100 {
		t.Errorf("Success rate too low: %.2f%% (expected > %.2f%%)",
			result.SuccessRate(), expectedSuccessRate*100)
	}
}

// BenchmarkServerConcurrentLoad benchmarks server performance under concurrent load.
func BenchmarkServerConcurrentLoad(b *testing.B) {
	cfg := config.AppConfig{Port: "0", Threshold: 4096}

	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 1000000})
	defer rl.Stop()

	srv := NewServer(fastStressService{}, cfg, WithRateLimiter(rl))
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	client := &http.Client{}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			resp, err := postMultiply(client, ts.URL, int64(i%1000), int64(i%1000)+1)
			if err != nil {
				b.Error(err)
				continue
			}
			resp.Body.Close()
			i++
		}
	})
}
