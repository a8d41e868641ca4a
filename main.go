// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
localepipe drives the gettext and Babel tools over a project's source tree:
it extracts translatable messages into a template, initializes missing
locale catalogs, merges template changes into existing catalogs and
compiles them.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/localepipe/localepipe/audit"
	"codeberg.org/localepipe/localepipe/config"
	"codeberg.org/localepipe/localepipe/pipeline"
	"codeberg.org/localepipe/localepipe/process"
)

var errNoStages = errors.New("no stage selected; pass at least one of --extract, --init, --update, --compile, --report")

// stageFlags records which stages were requested on the command line.
type stageFlags struct {
	extract bool
	init    bool
	update  bool
	compile bool
	report  bool
}

func (s stageFlags) stages() []pipeline.Stage {
	var stages []pipeline.Stage

	for _, sel := range []struct {
		on    bool
		stage pipeline.Stage
	}{
		{s.extract, pipeline.StageExtract},
		{s.init, pipeline.StageInit},
		{s.update, pipeline.StageUpdate},
		{s.compile, pipeline.StageCompile},
		{s.report, pipeline.StageReport},
	} {
		if sel.on {
			stages = append(stages, sel.stage)
		}
	}

	return stages
}

func newRootCommand() *cobra.Command {
	var (
		flags    config.Flags
		selected stageFlags
	)

	cmd := &cobra.Command{
		Use:   "localepipe",
		Short: "Extract, initialize, update and compile gettext catalogs",
		Long: `localepipe runs the localization stages for a project. Stages always run in
the order extract, init, update, compile, report regardless of flag order,
and the first failing stage stops the run.`,
		Example: `  localepipe --extract
  localepipe --extract --init --update --compile
  localepipe --root ../sunshine --compile --report`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       config.BuildVersion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stages := selected.stages()
			if len(stages) == 0 {
				_ = cmd.Usage()

				return errNoStages
			}

			return run(cmd.Context(), flags, stages)
		},
	}

	fs := cmd.Flags()
	fs.BoolVar(&selected.extract, "extract", false, "Extract messages from sources into the template.")
	fs.BoolVar(&selected.init, "init", false, "Create catalogs for locales that do not have one yet.")
	fs.BoolVar(&selected.update, "update", false, "Merge the template into existing catalogs.")
	fs.BoolVar(&selected.compile, "compile", false, "Compile catalogs into binary form.")
	fs.BoolVar(&selected.report, "report", false, "Log translation coverage of every catalog.")
	flags.BindFlags(fs)

	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and revision information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := config.ReadBuildInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "localepipe %s (%s)\n", config.BuildVersion, info.Revision())
		},
	}
}

// run loads the configuration and executes the requested stages.
func run(ctx context.Context, flags config.Flags, stages []pipeline.Stage) error {
	var cfg config.Config
	if err := cfg.LoadConfig(flags); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	opts, err := cfg.PipelineOptions()
	if err != nil {
		return err
	}

	opts.Logger = log.Logger
	opts.Runner = process.NewExecRunner(os.Stdout, log.Logger)

	p, err := pipeline.New(opts)
	if err != nil {
		return err
	}

	if err := p.Run(ctx, stages...); err != nil {
		return err
	}

	log.Info().
		Stringer("state", p.State()).
		Msg("Localization run finished")

	return nil
}

// main is the entry point of the application.
func main() {
	audit.SetDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		log.Fatal().Err(err).Msg("Localization run failed")
	}
}
