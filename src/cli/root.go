// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pkival/pathvet/src/internal/harness"
	"github.com/pkival/pathvet/src/internal/limbo"
	"github.com/pkival/pathvet/src/logger"
	"github.com/spf13/cobra"
)

var (
	limboFile   string
	outputFile  string
	configFile  string
	includeGlob string
	excludeGlob string
	showSummary bool
	workerCount int
)

// Execute runs the root command, handling any errors that occur during execution.
// The context is cancelled when the process receives a termination signal, which
// marks any not-yet-evaluated vectors as skipped instead of dropping them.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := &cobra.Command{
		Use:     "pathvet",
		Short:   "Certification path conformance harness for x509-limbo suites",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execCli(cmd.Context(), log)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&limboFile, "limbo", "l", "limbo.json", "testcase suite to evaluate (\"-\" reads stdin)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write results document to OUTPUT_FILE (default: stdout)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "skip-classification config file (YAML or JSON)")
	rootCmd.Flags().StringVar(&includeGlob, "include", "", "only evaluate testcases whose id matches this pattern")
	rootCmd.Flags().StringVar(&excludeGlob, "exclude", "", "never evaluate testcases whose id matches this pattern")
	rootCmd.Flags().BoolVarP(&showSummary, "summary", "s", false, "print an aggregate summary table after evaluation")
	rootCmd.Flags().IntVarP(&workerCount, "workers", "w", 1, "number of testcases evaluated concurrently")

	return rootCmd.ExecuteContext(ctx)
}

// execCli loads the testcase suite, evaluates every vector through the
// certification-path engine, and writes the versioned results document to the
// chosen output. The suite is schema-validated before evaluation so a
// malformed corpus is rejected up front rather than producing a partial run.
func execCli(ctx context.Context, log logger.Logger) error {
	suite, err := limbo.Load(limboFile)
	if err != nil {
		return fmt.Errorf("loading testcase suite: %w", err)
	}

	if includeGlob != "" || excludeGlob != "" {
		suite, err = suite.Filter(includeGlob, excludeGlob)
		if err != nil {
			return fmt.Errorf("filtering testcases: %w", err)
		}
	}

	var classification *harness.Classification
	if configFile != "" {
		classification, err = harness.LoadClassification(configFile)
		if err != nil {
			return fmt.Errorf("loading classification config: %w", err)
		}
	}

	log.Printf("Evaluating %d testcases...", len(suite.Testcases))

	driver := harness.NewDriver(classification)
	driver.Workers = workerCount
	result := driver.EvaluateSuite(ctx, suite)

	data, err := harness.EncodeResult(result)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	if outputFile != "" {
		if err = os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	} else {
		fmt.Print(string(data))
	}

	if showSummary {
		summary := harness.Summarize(suite, result, classification)
		log.Println(summary.RenderTable())
	}

	return nil
}
