package cli

import (
	"context"
	"net/http"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/turtacn/ghscrunch/internal/application/crunch"
	"github.com/turtacn/ghscrunch/internal/config"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
)

// NewWatchCmd re-runs datasets whenever one of their source files changes.
func NewWatchCmd() *cobra.Command {
	var (
		metricsAddr string
		initial     bool
	)

	cmd := &cobra.Command{
		Use:   "watch [jp|kr|nz]...",
		Short: "Re-run datasets when their source files change",
		Long: "Watches the directories holding the configured source files and\n" +
			"re-runs the affected datasets, debounced by watch.debounce, when a\n" +
			"source is written or created. Stops on SIGINT or SIGTERM.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			datasets, err := parseDatasets(args)
			if err != nil {
				return err
			}
			log := cliCtx.Logger.Named("watch")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := newRuntime(ctx, cliCtx.Config, cliCtx.Logger, false)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := rt.Close(); cerr != nil {
					log.Warn("failed to close sinks", logging.Err(cerr))
				}
			}()

			if metricsAddr != "" {
				srv := &http.Server{Addr: metricsAddr, Handler: rt.metrics.Collector().Handler(), ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("metrics server failed", logging.Err(err))
					}
				}()
				defer srv.Close()
				log.Info("serving metrics", logging.String("addr", metricsAddr))
			}

			w, err := newSourceWatcher(cliCtx.Config, datasets, cliCtx.Config.Watch.Debounce, log)
			if err != nil {
				return err
			}
			defer w.Close()

			run := func(ctx context.Context, ds []crunch.Dataset) {
				report, err := rt.service.Run(ctx, ds)
				if report != nil {
					_ = PrintResult(cmd, reportView{report})
				}
				if err != nil {
					log.Error("run failed", logging.Err(err))
				}
			}
			if initial {
				run(ctx, datasets)
			}
			return w.Run(ctx, run)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve run metrics on this address, e.g. :9090")
	cmd.Flags().BoolVar(&initial, "initial", true, "run every watched dataset once at startup")
	return cmd
}

// sourceWatcher maps file system events on source files to datasets and
// coalesces bursts of events into one run.
type sourceWatcher struct {
	watcher  *fsnotify.Watcher
	owners   map[string][]crunch.Dataset
	debounce time.Duration
	log      logging.Logger
	once     sync.Once
}

func newSourceWatcher(cfg *config.Config, datasets []crunch.Dataset, debounce time.Duration, log logging.Logger) (*sourceWatcher, error) {
	if debounce <= 0 {
		debounce = config.DefaultWatchDebounce
	}
	owners := make(map[string][]crunch.Dataset)
	dirs := make(map[string]struct{})
	for _, d := range datasets {
		for _, f := range sourceFiles(cfg, d) {
			abs, err := filepath.Abs(f)
			if err != nil {
				return nil, errors.Wrap(err, errors.CodeSourceOpen, "resolve source path").WithDetail(f)
			}
			owners[abs] = append(owners[abs], d)
			dirs[filepath.Dir(abs)] = struct{}{}
		}
	}
	if len(owners) == 0 {
		return nil, errors.InvalidParam("no source files configured for the watched datasets")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "create file watcher")
	}
	for dir := range dirs {
		// Directories are watched rather than files so that editors which
		// replace a file by rename still produce events.
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, errors.Wrap(err, errors.CodeSourceOpen, "watch source directory").WithDetail(dir)
		}
	}
	log.Info("watching sources", logging.Int("files", len(owners)), logging.Int("dirs", len(dirs)))
	return &sourceWatcher{watcher: fw, owners: owners, debounce: debounce, log: log}, nil
}

// debouncer collects changed datasets and fires once no change arrived for
// delay.
type debouncer struct {
	delay   time.Duration
	timer   *time.Timer
	pending map[crunch.Dataset]bool
}

func newDebouncer(delay time.Duration) *debouncer {
	t := time.NewTimer(delay)
	if !t.Stop() {
		<-t.C
	}
	return &debouncer{delay: delay, timer: t, pending: make(map[crunch.Dataset]bool)}
}

// C fires when the pending set has been quiet for the delay.
func (d *debouncer) C() <-chan time.Time { return d.timer.C }

// touch marks ds as changed and restarts the delay. A tick that fired but was
// not yet received is discarded so it cannot cut the new delay short.
func (d *debouncer) touch(ds ...crunch.Dataset) {
	for _, x := range ds {
		d.pending[x] = true
	}
	if !d.timer.Stop() {
		select {
		case <-d.timer.C:
		default:
		}
	}
	d.timer.Reset(d.delay)
}

// flush returns the pending datasets in canonical order and empties the set.
func (d *debouncer) flush() []crunch.Dataset {
	var ds []crunch.Dataset
	for _, x := range crunch.Datasets() {
		if d.pending[x] {
			ds = append(ds, x)
		}
	}
	clear(d.pending)
	return ds
}

func (d *debouncer) stop() { d.timer.Stop() }

// Run blocks until ctx ends, calling run with the datasets whose sources
// changed, in canonical order.
func (w *sourceWatcher) Run(ctx context.Context, run func(context.Context, []crunch.Dataset)) error {
	deb := newDebouncer(w.debounce)
	defer deb.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			owners := w.owners[filepath.Clean(ev.Name)]
			if len(owners) == 0 {
				continue
			}
			w.log.Debug("source changed", logging.String("file", ev.Name), logging.String("op", ev.Op.String()))
			deb.touch(owners...)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", logging.Err(err))

		case <-deb.C():
			if ds := deb.flush(); len(ds) > 0 {
				run(ctx, ds)
			}
		}
	}
}

// Close stops the underlying watcher.
func (w *sourceWatcher) Close() error {
	var err error
	w.once.Do(func() { err = w.watcher.Close() })
	return err
}
