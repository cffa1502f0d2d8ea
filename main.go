package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"phishset/pkg/config"
	"phishset/pkg/dataset"
	"phishset/pkg/probe"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "phishset",
		Short:         "Build a labeled feature dataset for phishing vs. benign URLs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := rootCmd.Flags()
	flags.String("input", "malicious_phish.csv", "labeled source CSV with url and type columns")
	flags.String("output", "phishing_url_dataset.csv", "output dataset CSV")
	flags.String("self-domain", "your-website-domain.com", "the site's own domain for the iframe external check")
	flags.Int("workers", 1, "number of concurrent URL workers")
	flags.Int64("seed", 0, "shuffle seed")

	viper.BindPFlag("INPUT_CSV", flags.Lookup("input"))
	viper.BindPFlag("OUTPUT_CSV", flags.Lookup("output"))
	viper.BindPFlag("SELF_DOMAIN", flags.Lookup("self-domain"))
	viper.BindPFlag("WORKERS", flags.Lookup("workers"))
	viper.BindPFlag("SHUFFLE_SEED", flags.Lookup("seed"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("could not create logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	prober := probe.New(cfg.DNSServer, time.Duration(cfg.ProbeTimeout)*time.Second)
	extractor := dataset.NewExtractor(
		dataset.NewHTTPClient(),
		prober,
		cfg.SelfDomain,
		time.Duration(cfg.FetchTimeout)*time.Second,
	)
	assembler := dataset.NewAssembler(extractor, logger, cfg.Workers)
	curator := dataset.NewCurator(assembler, cfg, logger)

	return curator.Run(cmd.Context())
}
