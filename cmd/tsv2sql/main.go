// Command tsv2sql converts a TSV export of verified Discord↔VRChat identity
// links into a batch INSERT statement for the profiles table.
//
// Typical usage:
//
//	tsv2sql                                   # data.tsv -> poblate-prod.sql
//	tsv2sql -input links.tsv -output seed.sql
//	tsv2sql -config jobs/prod.json -validate  # lint the job file and exit
//	tsv2sql -dir exports/                     # convert every *.tsv in a dir
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"tsv2sql/internal/config"
	"tsv2sql/internal/convert"
	"tsv2sql/internal/metrics"
	"tsv2sql/internal/metrics/datadog"
	"tsv2sql/internal/metrics/prompush"
)

func main() {
	var (
		cfgPath       string
		dir           string
		workers       int
		validate      bool
		verbose       bool
		metricsFlg    string
		pushGatewayFl string
		dogstatsdFl   string
	)

	flag.StringVar(&cfgPath, "config", "", "job config JSON path (optional)")
	flag.String("input", "", "input TSV path or URL (default "+config.DefaultInput+")")
	flag.String("output", "", "output SQL path (default "+config.DefaultOutput+")")
	flag.String("admin-id", "", "admin identifier stamped as updated_by/verified_by")
	flag.String("group-id", "", "group identifier stamped as verified_from")
	flag.String("dialect", "", "SQL literal dialect: standard or postgres")
	flag.Bool("dedup", false, "drop duplicate (discord_id, vrchat_id) rows")
	flag.String("dedup-policy", "", "dedup winner policy: keep-first or keep-last")
	flag.StringVar(&dir, "dir", "", "convert every *.tsv under this directory instead of -input")
	flag.IntVar(&workers, "workers", convert.DefaultWorkers, "concurrent files in -dir mode")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.BoolVar(&verbose, "v", false, "enable verbose logs (timestamps)")
	flag.StringVar(&metricsFlg, "metrics-backend", "", "metrics backend to use (pushgateway, datadog, none)")
	flag.StringVar(&pushGatewayFl, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&dogstatsdFl, "dogstatsd-addr", "", "DogStatsD address (overrides env DOGSTATSD_ADDR)")

	flag.Parse()

	// Plain console output by default; -v restores timestamps.
	log.SetFlags(0)
	if verbose {
		log.SetFlags(log.LstdFlags)
	}

	job := config.Default()
	if cfgPath != "" {
		var err error
		job, err = config.Load(cfgPath)
		if err != nil {
			fatalf("Error: %v", err)
		}
	}
	applyFlagOverrides(&job)

	issues := config.Validate(job)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasError(issues) {
		fatalf("Configuration is invalid")
	}
	if validate {
		log.Printf("Configuration is valid")
		return
	}

	initMetrics(job.Name, metricsFlg, pushGatewayFl, dogstatsdFl)

	ctx := context.Background()
	start := time.Now()

	var runErr error
	if dir != "" {
		runErr = runBatch(ctx, job, dir, workers)
	} else {
		_, runErr = convert.Run(ctx, job)
	}

	metrics.RecordRun(job.Name, runErr, time.Since(start))
	if err := metrics.Flush(); err != nil {
		log.Printf("metrics: flush failed: %v", err)
	}

	if runErr != nil {
		if dir == "" && errors.Is(runErr, os.ErrNotExist) {
			fatalf("Error: File '%s' not found", job.Input)
		}
		fatalf("Error: %v", runErr)
	}
}

// applyFlagOverrides copies explicitly set flags into the job, so flags win
// over both defaults and the config file.
func applyFlagOverrides(job *config.Job) {
	flag.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "input":
			job.Input = v
		case "output":
			job.Output = v
		case "admin-id":
			job.AdminID = v
		case "group-id":
			job.GroupID = v
		case "dialect":
			job.Dialect = v
		case "dedup":
			job.Dedup.Enabled = v == "true"
		case "dedup-policy":
			job.Dedup.Policy = v
		}
	})
}

// initMetrics installs the metrics backend selected by flag → env → none.
func initMetrics(jobName, backendFlg, pushGatewayFlg, dogstatsdFlg string) {
	backendName := backendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	if jobName == "" {
		jobName = "tsv2sql"
	}

	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			return
		}
		metrics.SetBackend(b)

	case "datadog":
		addr := dogstatsdFlg
		if addr == "" {
			addr = os.Getenv("DOGSTATSD_ADDR")
		}
		if addr == "" {
			addr = "127.0.0.1:8125"
		}
		b, err := datadog.NewBackend(datadog.Config{Addr: addr, Namespace: "tsv2sql."})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return
		}
		metrics.SetBackend(b)

	case "", "none":
		// metrics stay nop

	default:
		log.Printf("metrics: unknown backend %q; using nop", backendName)
	}
}

// runBatch converts a directory of TSV files and prints a summary. It
// returns an error when any file failed so the process exits non-zero.
func runBatch(ctx context.Context, job config.Job, dir string, workers int) error {
	results, err := convert.RunDir(ctx, job, dir, workers)
	if err != nil {
		return err
	}

	var files, records, failures int
	for _, fr := range results {
		files++
		records += fr.Result.Records
		if fr.Err != nil {
			failures++
		}
	}
	log.Printf("Converted %d of %d files, %d records total", files-failures, files, records)
	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, files)
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
