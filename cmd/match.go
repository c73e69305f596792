package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/a11ylab/ariasnap"
	"github.com/a11ylab/ariasnap/formatter"
	"github.com/a11ylab/ariasnap/internal/pattern"
	"github.com/a11ylab/ariasnap/internal/snapshot"
)

var updateBaselines bool

var matchCmd = &cobra.Command{
	Use:   "match [case files or directories...]",
	Short: "Match captured snapshots against their expectation baselines",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide case file or directory paths")
			os.Exit(1)
		}
		policy, err := loadPolicy()
		if err != nil {
			logger.Fatal("Failed to load regexify policy", zap.Error(err))
		}

		files, err := collectCaseFiles(args)
		if err != nil {
			logger.Fatal("Failed to collect case files", zap.Error(err))
		}
		if len(files) == 0 {
			fmt.Println("no case files found")
			return
		}

		failed := runMatch(files, policy)
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	matchCmd.Flags().BoolVarP(&updateBaselines, "update", "u", false, "Rewrite failing baselines from the captured snapshot")
}

// collectCaseFiles expands directory arguments into their .yaml case
// files, sorted for stable output.
func collectCaseFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && isCaseFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking directory %s: %w", path, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

func isCaseFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

type caseOutcome struct {
	file    string
	ok      bool
	updated bool
	output  string
	err     error
}

// runMatch processes every case and prints per-file results; it returns
// the number of failures. Multiple cases run on a bounded worker pool
// behind a progress bar.
func runMatch(files []string, policy snapshot.Policy) int {
	outcomes := make([]caseOutcome, len(files))

	if len(files) == 1 {
		outcomes[0] = matchCase(files[0], policy)
	} else {
		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("matching"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))

		sem := make(chan struct{}, runtime.NumCPU())
		var wg sync.WaitGroup
		for i, file := range files {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, file string) {
				defer wg.Done()
				defer func() { <-sem }()
				outcomes[i] = matchCase(file, policy)
				bar.Add(1)
			}(i, file)
		}
		wg.Wait()
		fmt.Println()
	}

	failed := 0
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			failed++
			fmt.Printf("ERROR %s: %v\n", o.file, o.err)
		case o.updated:
			fmt.Printf("UPDATE %s\n", o.file)
		case o.ok:
			fmt.Printf("PASS  %s\n", o.file)
		default:
			failed++
			fmt.Printf("FAIL  %s\n%s\n", o.file, o.output)
		}
	}
	return failed
}

func matchCase(path string, policy snapshot.Policy) caseOutcome {
	c, err := snapshot.LoadCase(path)
	if err != nil {
		return caseOutcome{file: path, err: err}
	}

	res, err := ariasnap.MatchText(c.Expect, c.Snapshot, policy)
	if err != nil {
		var serr *pattern.SyntaxError
		if errors.As(err, &serr) {
			// a malformed baseline is reported with its caret excerpt,
			// never retried
			return caseOutcome{file: path, output: formatter.FormatSyntaxErrorColor(serr, c.Expect)}
		}
		return caseOutcome{file: path, err: err}
	}
	if res.Matched {
		return caseOutcome{file: path, ok: true}
	}

	if updateBaselines && c.Snapshot != nil {
		c.Expect = ariasnap.Suggested(c.Snapshot, policy)
		if err := c.Save(path); err != nil {
			return caseOutcome{file: path, err: err}
		}
		return caseOutcome{file: path, ok: true, updated: true}
	}
	return caseOutcome{file: path, output: formatter.ColorizeDiff(res.Diff)}
}
