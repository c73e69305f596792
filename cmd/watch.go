package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/a11ylab/ariasnap/internal/snapshot"
)

var watchCmd = &cobra.Command{
	Use:   "watch [case files or directories...]",
	Short: "Re-run matching whenever a case file changes",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide case file or directory paths")
			os.Exit(1)
		}
		policy, err := loadPolicy()
		if err != nil {
			logger.Fatal("Failed to load regexify policy", zap.Error(err))
		}
		if err := watchCases(args, policy); err != nil {
			logger.Fatal("Watch failed", zap.Error(err))
		}
	},
}

func watchCases(paths []string, policy snapshot.Policy) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			if err := watcher.Add(path); err != nil {
				return err
			}
			continue
		}
		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return watcher.Add(p)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	logger.Info("Watching for changes", zap.Strings("paths", paths))
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write && isCaseFile(event.Name) {
				// coalesce editor write bursts
				time.Sleep(100 * time.Millisecond)
				reportOutcome(matchCase(event.Name, policy))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func reportOutcome(o caseOutcome) {
	switch {
	case o.err != nil:
		fmt.Printf("ERROR %s: %v\n", o.file, o.err)
	case o.ok:
		fmt.Printf("PASS  %s\n", o.file)
	default:
		fmt.Printf("FAIL  %s\n%s\n", o.file, o.output)
	}
}
