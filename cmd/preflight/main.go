// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/epmon/endpoint-monitor/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	path := strings.TrimSpace(os.Getenv("EPMON_CONFIG_PATH"))
	if path == "" {
		path = "config.json5"
		warn("EPMON_CONFIG_PATH empty; checking default " + path)
	}
	f, err := config.LoadFile(path)
	if err != nil {
		fail("endpoint config unusable: " + err.Error())
	}
	ok(fmt.Sprintf("endpoint config parses: %s (%d endpoints)", path, len(f.Endpoints)))

	if v := strings.TrimSpace(os.Getenv("EPMON_CHECK_INTERVAL")); v != "" {
		if n, err := strconv.Atoi(v); err != nil || n <= 0 {
			fail("EPMON_CHECK_INTERVAL must be a positive number of minutes, got " + v)
		}
		ok("EPMON_CHECK_INTERVAL=" + v)
	}

	if os.Getenv("EPMON_NO_CLOUD_SINK") != "" {
		ok("cloud sink disabled by EPMON_NO_CLOUD_SINK")
	} else {
		if os.Getenv("AWS_REGION") == "" && os.Getenv("AWS_DEFAULT_REGION") == "" {
			warn("AWS region not set — remote sink will be unavailable, console-only mode.")
		} else {
			ok("AWS region present")
		}
		if os.Getenv("EPMON_LOG_GROUP") == "" {
			warn("EPMON_LOG_GROUP empty; default log group will be used.")
		}
	}

	ok("preflight passed")
}
