package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shanehull/corpactions/internal/cache"
	"github.com/shanehull/corpactions/internal/config"
	"github.com/shanehull/corpactions/internal/directory"
	"github.com/shanehull/corpactions/internal/exchange"
	"github.com/shanehull/corpactions/internal/filter"
	"github.com/shanehull/corpactions/internal/logging"
	"github.com/shanehull/corpactions/internal/pipeline"
)

type rootOptions struct {
	configPath string
	logLevel   string
	dev        bool

	cfg     config.Config
	logger  *zap.Logger
	service *pipeline.Service
	now     func() time.Time
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{now: time.Now}

	cmd := &cobra.Command{
		Use:   "corpactions",
		Short: "Fetch, filter and export exchange corporate action announcements",
		Long: `corpactions retrieves corporate announcements for a list of companies from an
exchange JSON API or HTML announcements page, normalizes them and filters them
by date range.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&opts.dev, "dev", false, "human-readable console logging")

	cmd.AddCommand(
		newListCmd(opts),
		newCompaniesCmd(opts),
		newExportCmd(opts),
		newDigestCmd(opts),
	)
	return cmd
}

func (o *rootOptions) setup(ctx context.Context) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.dev {
		cfg.Log.Development = true
	}
	o.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	o.logger = logger

	fetcher := exchange.NewFetcher(exchange.FetcherConfig{
		UserAgent:     cfg.Fetch.UserAgent,
		Timeout:       cfg.Fetch.Timeout,
		RatePerSecond: cfg.Fetch.RatePerSecond,
	}, logger.Named("fetch"))

	dir, err := buildDirectory(ctx, cfg.Companies, fetcher)
	if err != nil {
		return err
	}
	logger.Debug("company directory loaded", zap.Int("count", len(dir.Companies())))

	memo, err := cache.NewManager(cfg.Cache.TTL, cfg.Cache.Timezone)
	if err != nil {
		return err
	}

	o.service = pipeline.New(dir, fetcher, cfg.Source,
		pipeline.WithCache(memo),
		pipeline.WithLogger(logger.Named("pipeline")),
	)
	return nil
}

func buildDirectory(ctx context.Context, c config.Companies, g directory.Getter) (*directory.Index, error) {
	switch {
	case c.File != "":
		return directory.LoadTableFile(c.File, c.NameColumn, c.CodeColumn)
	case c.RemoteURL != "":
		return directory.LoadRemote(ctx, g, c.RemoteURL, c.NameColumn, c.CodeColumn)
	case len(c.Static) > 0:
		return directory.NewStatic(c.Static), nil
	default:
		return directory.NewStatic(directory.DefaultCompanies), nil
	}
}

// queryFlags are the filter flags shared by list, export and digest.
type queryFlags struct {
	window string
	from   string
	to     string
	search string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&q.window, "window", "w", "all", "relative window: all, 1m, 3m, 6m, 12m")
	cmd.Flags().StringVar(&q.from, "from", "", "start date, inclusive (DD/MM/YYYY); overrides --window")
	cmd.Flags().StringVar(&q.to, "to", "", "end date, inclusive (DD/MM/YYYY); overrides --window")
	cmd.Flags().StringVarP(&q.search, "search", "s", "", "only announcements whose text contains this")
}

// query resolves the flags against now, so relative windows move with the clock.
func (q *queryFlags) query(now time.Time) (pipeline.Query, error) {
	if q.from != "" || q.to != "" {
		r, err := filter.ParseRange(q.from, q.to)
		if err != nil {
			return pipeline.Query{}, err
		}
		return pipeline.Query{Range: r, Search: q.search}, nil
	}

	w, err := filter.ParseWindow(q.window)
	if err != nil {
		return pipeline.Query{}, err
	}
	return pipeline.Query{Range: w.Range(now), Search: q.search}, nil
}

func (o *rootOptions) lookup(cmd *cobra.Command, names []string, q *queryFlags) ([]pipeline.Result, pipeline.Query, error) {
	query, err := q.query(o.now())
	if err != nil {
		return nil, query, fmt.Errorf("invalid filter: %w", err)
	}
	return o.service.LookupAll(cmd.Context(), names, query), query, nil
}
