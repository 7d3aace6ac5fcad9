/*
Copyright 2026 Nscale.

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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/unikorn-cloud/teamcity-testing/pkg/constants"
	"github.com/unikorn-cloud/teamcity-testing/pkg/generators"
	"github.com/unikorn-cloud/teamcity-testing/pkg/models"
	"github.com/unikorn-cloud/teamcity-testing/pkg/requests"
	"github.com/unikorn-cloud/teamcity-testing/pkg/specification"
)

var (
	errInvalidCount       = errors.New("count must be positive")
	errInvalidConcurrency = errors.New("concurrency must be positive")
	errInvalidOutput      = errors.New("output must be yaml or json")
	errNoToken            = errors.New("a super user token is required to seed")
)

type options struct {
	baseURL     string
	token       string
	count       int
	concurrency int
	seed        bool
	output      string
	logLevel    string
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.baseURL, "base-url", os.Getenv("TEAMCITY_BASE_URL"), "TeamCity server to seed.")
	f.StringVar(&o.token, "superuser-token", os.Getenv("TEAMCITY_SUPERUSER_TOKEN"), "Super user token used to seed.")
	f.IntVarP(&o.count, "count", "n", 1, "Number of test data bundles to generate.")
	f.IntVar(&o.concurrency, "concurrency", 4, "Number of bundles seeded at once.")
	f.BoolVar(&o.seed, "seed", false, "Create the generated bundles on the server.")
	f.StringVarP(&o.output, "output", "o", "yaml", "Output format, yaml or json.")
	f.StringVar(&o.logLevel, "log-level", "info", "Log level.")
}

func (o *options) validate() error {
	if o.count < 1 {
		return errInvalidCount
	}

	if o.output != "yaml" && o.output != "json" {
		return errInvalidOutput
	}

	if o.seed && o.token == "" {
		return errNoToken
	}

	if o.seed && o.concurrency < 1 {
		return errInvalidConcurrency
	}

	return nil
}

func newLogger(level string) (logr.Logger, error) {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return logr.Logger{}, err
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(l)

	zl, err := config.Build()
	if err != nil {
		return logr.Logger{}, err
	}

	return zapr.NewLogger(zl), nil
}

// seed creates every bundle on the server, the project first as the build
// configuration depends on it.
func seed(ctx context.Context, logger logr.Logger, o *options, bundles []*generators.TestData) error {
	spec := specification.NewBuilder(o.baseURL, o.token).SuperUserSpec()
	checked := requests.NewCheckedRequests(spec, requests.WithLogger(logger))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(o.concurrency)

	for _, bundle := range bundles {
		group.Go(func() error {
			if err := create(ctx, checked, models.KindProject, bundle.Project); err != nil {
				return err
			}

			if err := create(ctx, checked, models.KindBuildType, bundle.BuildType); err != nil {
				return err
			}

			if err := create(ctx, checked, models.KindUser, bundle.User); err != nil {
				return err
			}

			logger.Info("seeded test data", "project", bundle.Project.ID, "buildType", bundle.BuildType.ID, "user", bundle.User.Username)

			return nil
		})
	}

	return group.Wait()
}

func create(ctx context.Context, checked *requests.CheckedRequests, kind models.Kind, entity models.Entity) error {
	request, err := checked.Request(kind)
	if err != nil {
		return err
	}

	if _, err := request.Create(ctx, entity); err != nil {
		return fmt.Errorf("creating %s %q: %w", kind, entity.Identity(), err)
	}

	return nil
}

func write(w io.Writer, format string, bundles []*generators.TestData) error {
	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(bundles)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(bundles); err != nil {
		return err
	}

	return encoder.Close()
}

func run(ctx context.Context, logger logr.Logger, o *options, w io.Writer) error {
	bundles := make([]*generators.TestData, o.count)

	for i := range bundles {
		bundles[i] = generators.GenerateTestData()

		for _, entity := range []models.Entity{bundles[i].User, bundles[i].Project, bundles[i].BuildType} {
			if err := models.Validate(entity); err != nil {
				return err
			}
		}
	}

	if o.seed {
		if err := seed(ctx, logger, o, bundles); err != nil {
			return err
		}
	}

	return write(w, o.output, bundles)
}

func main() {
	var o options

	o.addFlags(pflag.CommandLine)

	pflag.Parse()

	logger, err := newLogger(o.logLevel)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger = logger.WithName("init")
	logger.Info("starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	if err := o.validate(); err != nil {
		logger.Error(err, "invalid options")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, &o, os.Stdout); err != nil {
		logger.Error(err, "generating test data")
		os.Exit(1) //nolint:gocritic
	}
}
