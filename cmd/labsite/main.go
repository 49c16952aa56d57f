package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/Uddiptaatwork/labsite"
	"github.com/Uddiptaatwork/labsite/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// run executes one site build and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "labsite %s\n", Version)
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, flags, env.NoColor)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the build continues.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug().Msgf(format, args...)
	}))

	configName := flags.config
	if configName == "" {
		configName = env.ConfigName
	}
	cfg, err := resolveConfig(configName, env.Config)
	if err != nil {
		return fail(env, logger, err, hintFor(err, flags.root, configName, nil))
	}

	opts := []labsite.Option{
		labsite.WithConfig(cfg),
		labsite.WithRoot(flags.root),
		labsite.WithLogger(logger),
	}
	if !flags.quiet {
		opts = append(opts, labsite.WithStdout(env.Stdout))
	}
	if flags.progress {
		opts = append(opts, labsite.WithProgress(newProgressReporter(env.Stderr).update))
	}

	builder, err := labsite.NewBuilder(opts...)
	if err != nil {
		return fail(env, logger, err, hintFor(err, flags.root, configName, cfg))
	}

	result, err := builder.Build(ctx)
	if err != nil {
		return fail(env, logger, err, hintFor(err, flags.root, configName, cfg))
	}

	logger.Debug().Str("site", result.SiteDir).Int("labs", len(result.Labs)).Msg("build finished")
	return ExitSuccess
}

// resolveConfig loads the named config file, or returns base (compiled-in
// defaults when nil) if no name is given.
func resolveConfig(name string, base *config.Config) (*config.Config, error) {
	if name != "" {
		return config.LoadConfig(name)
	}
	if base != nil {
		return base, nil
	}
	return config.DefaultConfig(), nil
}

// fail reports err on stderr and maps it to an exit code.
func fail(env *Environment, logger zerolog.Logger, err error, hint string) int {
	logger.Debug().Stack().Err(err).Msg("build aborted")
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hint)
	return exitCodeFor(err)
}
