package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"salesdash/internal/reports"
	"salesdash/internal/server"
	"salesdash/internal/surface"
)

type renderOptions struct {
	pages  []string
	outDir string
	store  bool
}

func newRenderCmd(flags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render pages to files without serving them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.pages, "page", nil, "Page route to render, e.g. /tiempo (repeatable; default all)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "rendered", "Output directory")
	cmd.Flags().BoolVar(&opts.store, "store", false, "Also archive each page to the configured snapshot storage")

	return cmd
}

func runRender(cmd *cobra.Command, flags *rootFlags, opts *renderOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log, err := loadConfig(ctx, flags)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer srv.Close()

	routes := opts.pages
	if len(routes) == 0 {
		for _, p := range srv.Controller.Registry().Pages() {
			routes = append(routes, p.Route)
		}
	}

	for _, route := range routes {
		snap, err := renderPage(ctx, srv, route)
		if err != nil {
			return err
		}

		dir := filepath.Join(opts.outDir, strings.Trim(route, "/"))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		for _, f := range snap.Files {
			if err := os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", f.Name, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d files in %s\n", route, len(snap.Files), dir)

		if opts.store {
			manifest, err := srv.Snapshots.StoreSnapshot(ctx, snap, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: archived as %s\n", route, manifest.ID)
		}
	}
	return nil
}

func renderPage(ctx context.Context, srv *server.Server, route string) (*reports.Snapshot, error) {
	ctrl := srv.Controller
	page, err := ctrl.Navigate(ctx, route)
	if err != nil {
		return nil, err
	}
	if err := ctrl.LoadPage(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", route, err)
	}

	var snap *reports.Snapshot
	err = ctrl.Do(ctx, func(doc *surface.Document) error {
		if target := doc.RedirectTarget(); target != "" {
			return fmt.Errorf("%s: backend rejected credentials (redirected to %s)", route, target)
		}
		var err error
		snap, err = srv.Builder.CollectSnapshot(page, ctrl.Registry().Pages(), doc, ctrl.Theme())
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
