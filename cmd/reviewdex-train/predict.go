package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/reviewdex/internal/domain"
	"github.com/kailas-cloud/reviewdex/internal/ml/artifact"
	sentimentuc "github.com/kailas-cloud/reviewdex/internal/usecase/sentiment"
)

func newPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict [review...]",
		Short: "Classify reviews with saved artifacts",
		Long: `Predict loads the vectorizer and classifier and prints one
"<label>\t<review>" line per input. Without arguments reviews are read
from stdin, one per line.`,
		RunE: runPredict,
	}
	cmd.Flags().String("model-dir", "", "artifact directory (default: sentiment.model_dir)")
	return cmd
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	paths := cfg.Sentiment.ArtifactPaths()
	if dir, _ := cmd.Flags().GetString("model-dir"); dir != "" {
		paths = artifact.PathsIn(dir)
	}

	set, err := artifact.Load(paths, cfg.Sentiment.NFeatures)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	analyzer, err := sentimentuc.NewAnalyzer(set.Vectorizer, set.Model)
	if err != nil {
		return fmt.Errorf("create analyzer: %w", err)
	}

	out := cmd.OutOrStdout()
	classify := func(text string) error {
		label, err := analyzer.Analyze(cmd.Context(), text)
		if errors.Is(err, domain.ErrEmptyText) {
			return nil
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\t%s\n", label, text)
		return err
	}

	if len(args) > 0 {
		for _, text := range args {
			if err := classify(text); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(cmd.InOrStdin())
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if err := classify(strings.TrimRight(sc.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}
