/*
Copyright 2026 the TeamCity API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/teamcity-api-tests/apitests/pkg/auth"
	"github.com/teamcity-api-tests/apitests/pkg/client"
	"github.com/teamcity-api-tests/apitests/pkg/registry"
)

var errIncomplete = errors.New("leftover entities could not be deleted")

type options struct {
	journal     string
	baseURL     string
	token       string
	timeout     time.Duration
	retries     int
	parallelism int
	dryRun      bool
	verbose     bool
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.journal, "journal", os.Getenv("CLEANUP_JOURNAL"), "Path of the journal written by the test suites.")
	f.StringVar(&o.baseURL, "base-url", os.Getenv("API_BASE_URL"), "Base URL of the CI server.")
	f.StringVar(&o.token, "token", os.Getenv("API_SUPERUSER_TOKEN"), "Super user token of the CI server.")
	f.DurationVar(&o.timeout, "timeout", registry.DefaultTimeout, "Timeout of a single deletion.")
	f.IntVar(&o.retries, "retries", registry.DefaultRetries, "Retries after a failed deletion.")
	f.IntVar(&o.parallelism, "parallelism", registry.DefaultParallelism, "Concurrent deletions per category.")
	f.BoolVar(&o.dryRun, "dry-run", false, "List leftover entities without deleting them.")
	f.BoolVar(&o.verbose, "verbose", false, "Log every request.")
}

func (o *options) validate() error {
	var missing []string

	if o.journal == "" {
		missing = append(missing, "--journal")
	}

	if o.baseURL == "" && !o.dryRun {
		missing = append(missing, "--base-url")
	}

	if o.token == "" && !o.dryRun {
		missing = append(missing, "--token")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required flags: %v", missing)
	}

	return nil
}

func newLogger(verbose bool) (logr.Logger, error) {
	config := zap.NewProductionConfig()

	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	zl, err := config.Build()
	if err != nil {
		return logr.Discard(), err
	}

	return zapr.NewLogger(zl), nil
}

func run(ctx context.Context, o *options, log logr.Logger) error {
	journal, err := registry.OpenBoltJournal(o.journal)
	if err != nil {
		return err
	}

	defer func() {
		if err := journal.Close(); err != nil {
			log.Error(err, "closing journal")
		}
	}()

	pool := client.NewPool(o.baseURL, auth.ForSuperUser(o.token),
		client.WithLogger(log.WithName("client")),
		client.WithRequestLogging(o.verbose, false),
	)

	r := registry.New(pool,
		registry.WithLogger(log.WithName("registry")),
		registry.WithJournal(journal),
		registry.WithTimeout(o.timeout),
		registry.WithRetries(o.retries),
		registry.WithParallelism(o.parallelism),
	)

	restored, err := r.Restore()
	if err != nil {
		return err
	}

	log.Info("restored leftover entities", "count", restored, "journal", o.journal)

	if o.dryRun {
		for _, entry := range r.Tracked() {
			fmt.Printf("%s\t%s\n", entry.Category, entry.Identity)
		}

		return nil
	}

	report := r.DeleteAll(ctx)

	for _, failure := range report.Failed {
		fmt.Fprintf(os.Stderr, "%s\t%s\t%v\n", failure.Entry.Category, failure.Entry.Identity, failure.Err)
	}

	if len(report.Failed) > 0 {
		return fmt.Errorf("%w: %d of %d", errIncomplete, len(report.Failed), len(report.Failed)+len(report.Deleted))
	}

	return nil
}

func main() {
	var o options

	o.addFlags(pflag.CommandLine)

	pflag.Parse()

	if err := o.validate(); err != nil {
		fmt.Println(err)
		pflag.Usage()
		os.Exit(2)
	}

	log, err := newLogger(o.verbose)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	log = log.WithName("api-janitor")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &o, log); err != nil {
		log.Error(err, "cleanup failed")
		stop()
		os.Exit(1)
	}
}
