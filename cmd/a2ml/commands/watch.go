package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/a2ml/driver"
	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/logger"
	"github.com/teranos/a2ml/watch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild whenever definition documents change",
		Long: `Run the compiler once, then again every time a definition document under
an input or dependency directory changes. Each rebuild is a complete, independent
run. Remote sources are fetched on every run but not watched.

Examples:
  a2ml watch --input interfaces --message-version 4.0 -o build/aasb`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
	addRunFlags(cmd)
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cfg := driverConfig(s)
	d := driver.New()

	p, err := d.ParserRegistry().Lookup(cfg.Parser)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dirs, err := watchDirs(ctx, append(append([]string{}, cfg.Dependencies...), cfg.Inputs...))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var mu sync.Mutex
	build := func() {
		mu.Lock()
		defer mu.Unlock()

		res, err := d.Run(ctx, cfg)
		if err != nil {
			PrintError(cmd.ErrOrStderr(), err)
			return
		}
		printResult(out, res, cfg.Output, verbosity(cmd))
	}

	build()

	w, err := watch.New(dirs, p.Extensions(), time.Duration(s.Watch.DebounceMS)*time.Millisecond, func(changed []string) {
		fmt.Fprintf(out, "%s %d changed, rebuilding\n", pterm.LightCyan("↻"), len(changed))
		build()
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s watching %d directories, Ctrl-C to stop\n", pterm.LightCyan("•"), len(dirs))
	return w.Run(ctx)
}

// watchDirs resolves the local sources to directories the way a run does,
// expanding "~" and relative paths. Remote sources are skipped.
func watchDirs(ctx context.Context, sources []string) ([]string, error) {
	log := logger.ComponentLogger("watch")
	var dirs []string
	for _, src := range sources {
		if driver.IsRemote(src) {
			log.Infow("Remote source is not watched", logger.FieldSource, src)
			continue
		}
		s, err := driver.ResolveSource(ctx, src, log)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, s.Dir)
	}
	if len(dirs) == 0 {
		return nil, errors.NewKind(errors.InvalidInput, "no local input or dependency directory to watch")
	}
	return dirs, nil
}
