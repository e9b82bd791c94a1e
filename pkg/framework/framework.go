package framework

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/flare-foundation/go-flare-common/pkg/logger"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/godwoken/web3-indexer/pkg/config"
	"github.com/godwoken/web3-indexer/pkg/database"
	"github.com/godwoken/web3-indexer/pkg/godwoken"
	"github.com/godwoken/web3-indexer/pkg/indexer"
)

type CLIArgs struct {
	ConfigFile string `arg:"--config,env:CONFIG_FILE" default:"config.toml"`
	BuildDir   string `arg:"--build-dir,env:BUILD_DIR" default:"." help:"directory holding the PROJECT_* build files"`
}

// Run parses the command line and syncs until SIGINT/SIGTERM, the
// configured end block or a fatal error.
func Run() error {
	var args CLIArgs
	arg.MustParse(&args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runWithArgs(ctx, args)
}

func runWithArgs(ctx context.Context, args CLIArgs) error {
	cfg, err := config.ReadBaseConfig(args.ConfigFile)
	if err != nil {
		return err
	}

	logger.Set(cfg.Logger)

	build := readBuild(args.BuildDir)
	logger.Infof("starting godwoken indexer %s (%s)", build.GitTag, build.GitHash)

	db, err := database.New(ctx, &cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.CheckVersion(ctx, build, cfg.Godwoken.RollupTypeHash); err != nil {
		return err
	}

	client := godwoken.NewClient(cfg.Godwoken.RPCURL)
	converter := godwoken.NewConverter(cfg.Godwoken.ScriptHashes)
	runner := indexer.New(cfg, client, db, converter)

	err = run(ctx, runner, cfg.Metrics)
	if tip, ok := runner.Tip(); ok {
		logger.Infof("indexer stopped at block %d", tip)
	}

	return err
}

type syncRunner interface {
	Run(ctx context.Context) error
}

// run supervises the sync loop and the metrics server. The server is shut
// down once the loop returns for any reason.
func run(ctx context.Context, runner syncRunner, metrics config.Metrics) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	if metrics.Address != "" {
		eg.Go(func() error {
			return serveMetrics(ctx, metrics.Address)
		})
	}

	eg.Go(func() error {
		defer cancel()

		err := runner.Run(ctx)
		if errors.Is(err, context.Canceled) {
			logger.Info("indexer stopped")
			return nil
		}

		return err
	})

	return eg.Wait()
}

func readBuild(dir string) *config.BuildConfig {
	build, err := config.ReadBuildVersion(dir)
	if err != nil {
		logger.Debugf("build info not available: %v", err)

		unknown := config.UnknownBuild
		return &unknown
	}

	return build
}
