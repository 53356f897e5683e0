package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joescharf/connoisseur/internal/index"
	"github.com/joescharf/connoisseur/internal/rules"
)

var indexDir string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the per-file embedding index",
	Long: `Walk a directory tree, embed every recognized source file, and persist
one index entry per file. Re-indexing overwrites existing entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return indexRun(cmd.Context())
	},
}

var indexListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List persisted index entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return indexListRun()
	},
}

func init() {
	indexCmd.Flags().StringVarP(&indexDir, "directory", "d", ".", "Directory tree to index")
	indexCmd.AddCommand(indexListCmd)
	rootCmd.AddCommand(indexCmd)
}

func openIndexStore(dir string) (*index.Store, error) {
	r, err := rules.Load(dir)
	if err != nil {
		return nil, err
	}
	return index.NewStore(viper.GetString("vectors_dir"), newProvider(), r)
}

func indexRun(ctx context.Context) error {
	s, err := openIndexStore(indexDir)
	if err != nil {
		return err
	}

	count, err := s.IndexTree(ctx, indexDir)
	if err != nil {
		return err
	}
	ui.Success("indexed %d files from %s", count, indexDir)
	return nil
}

func indexListRun() error {
	s, err := openIndexStore(".")
	if err != nil {
		return err
	}
	entries, err := s.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ui.Info("index is empty; run 'connoisseur index -d <dir>' first")
		return nil
	}

	table := ui.Table([]string{"PATH", "EMBEDDING LEN"})
	for _, e := range entries {
		_ = table.Append([]string{e.Path, fmt.Sprintf("%d", e.EmbeddingLen)})
	}
	return table.Render()
}
