package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fulldump/chainkv/bootstrap"
	"github.com/fulldump/chainkv/configuration"
)

type JSON = map[string]any

func Parallel(workers int, f func()) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}
	wg.Wait()
}

func newClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     1024,
			MaxIdleConnsPerHost: 1024,
			MaxIdleConns:        1024,
		},
		Timeout: 10 * time.Second,
	}
}

func post(client *http.Client, url string, payload any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// Create creates an index or a map with a unique name and returns it
func Create(base, kind string, payload JSON) (string, error) {

	name := "bench-" + strconv.FormatInt(time.Now().UnixNano(), 10)
	payload["name"] = name

	status, err := post(http.DefaultClient, base+"/v1/"+kind, payload)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", kind, err)
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("create %s: unexpected status %d", kind, status)
	}

	return name, nil
}

func CreateServer(c *Config) (start, stop func()) {
	conf := configuration.Default()
	conf.Buckets = c.Buckets
	conf.LogLevel = "warn"
	c.Base = "http://" + conf.HttpAddr

	return bootstrap.Bootstrap(conf)
}

// Run sends one request per key from c.Workers workers and prints throughput
func Run(c Config, label, url string, payload func(n int64) JSON) {

	client := newClient()
	items := c.N
	failures := int64(0)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-time.After(time.Second):
				fmt.Println("pending:", atomic.LoadInt64(&items))
			}
		}
	}()

	t0 := time.Now()
	Parallel(c.Workers, func() {
		for {
			n := atomic.AddInt64(&items, -1)
			if n < 0 {
				return
			}
			status, err := post(client, url, payload(n))
			if err != nil || status >= 300 {
				atomic.AddInt64(&failures, 1)
			}
		}
	})
	took := time.Since(t0)
	close(done)

	fmt.Println(label, "sent:", c.N)
	fmt.Println(label, "failures:", failures)
	fmt.Println(label, "took:", took)
	fmt.Printf("%s throughput: %.2f ops/sec\n", label, float64(c.N)/took.Seconds())
}

// WaitReady polls the server until the database is operating
func WaitReady(base string) error {
	for i := 0; i < 100; i++ {
		resp, err := http.Get(base + "/v1/indexes")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server not ready at %s", base)
}
