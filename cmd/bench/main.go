package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fulldump/goconfig"
)

type Config struct {
	Test    string `usage:"name of the test: ALL | INSTALL | PUT"`
	Base    string `usage:"base URL, empty starts a local server"`
	N       int64  `usage:"number of keys"`
	Workers int    `usage:"number of workers"`
	Buckets int    `usage:"buckets of the benchmark index"`
}

func main() {

	c := Config{
		Test:    "ALL",
		Base:    "",
		N:       100_000,
		Workers: 16,
		Buckets: 100,
	}
	goconfig.Read(&c)

	err := run(c)
	if err != nil {
		fmt.Println("ERROR:", err.Error())
		os.Exit(1)
	}
}

// run returns instead of exiting so a server started here is always stopped
func run(c Config) error {

	if c.Base == "" {
		start, stop := CreateServer(&c)
		defer func() {
			fmt.Println("Cleaning up...")
			stop()
		}()
		go start()
	}

	if err := WaitReady(c.Base); err != nil {
		return err
	}

	switch strings.ToUpper(c.Test) {
	case "ALL":
		if err := TestInstall(c); err != nil {
			return err
		}
		return TestPut(c)
	case "INSTALL":
		return TestInstall(c)
	case "PUT":
		return TestPut(c)
	}

	return fmt.Errorf("unknown test %s", c.Test)
}
