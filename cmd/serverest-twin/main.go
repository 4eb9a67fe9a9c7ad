/*
Copyright 2026 the ServeRest API Tests Authors.

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
	"fmt"
	"os"

	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/serverest-qa/api-tests/pkg/twin"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

func main() {
	options := twin.DefaultOptions()

	options.AddFlags(pflag.CommandLine)

	pflag.Parse()

	logger, err := twin.NewLogger(options.LogLevel, zapcore.Lock(os.Stdout))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	log.SetLogger(zapr.NewLogger(logger))

	log.Log.WithName("init").Info("service starting", "application", "serverest-twin")

	ctx := cr.SetupSignalHandler()

	server, err := twin.New(options, logger)
	if err != nil {
		logger.Error("failed to initialise", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	_ = logger.Sync()
}
