package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediavault/internal/client/state"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		live   bool
		search string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print catalog changes as they happen",
		Long: `Print catalog changes as they happen.

With --live the asset table is re-printed every time the asset list changes
on the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if live {
				return a.watchLive(cmd.Context(), search)
			}
			events, err := a.client().Events(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, styleMuted.Render("Watching "+a.server+" (Ctrl+C to stop)"))
			for event := range events {
				if a.jsonOut {
					if err := a.printJSON(event); err != nil {
						return err
					}
					continue
				}
				line := fmt.Sprintf("%s  %-11s %-11s %s", event.Timestamp, event.Resource, event.Action, strings.Join(event.IDs, ","))
				fmt.Fprintln(a.out, strings.TrimRight(line, " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "Keep an up-to-date asset table instead of printing events")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Only show assets matching this text (with --live)")
	return cmd
}

// watchLive mirrors the catalog in a state.Store and prints the asset table
// after each completed asset fetch.
func (a *app) watchLive(ctx context.Context, search string) error {
	c := a.client()
	events, err := c.Events(ctx)
	if err != nil {
		return err
	}

	store := state.New(c)
	if search == "" {
		err = store.Refresh(ctx)
	} else {
		err = store.SetFilters(ctx, state.FilterPatch{Search: &search})
		if err == nil {
			err = store.FetchCollections(ctx)
		}
		if err == nil {
			err = store.FetchTags(ctx)
		}
	}
	if err != nil {
		return err
	}
	a.renderLive(store.Snapshot())

	last := store.Snapshot().AssetsStatus
	unsubscribe := store.Subscribe(func(snap state.Snapshot) {
		prev := last
		last = snap.AssetsStatus
		if prev != state.Loading {
			return
		}
		switch snap.AssetsStatus {
		case state.Loaded:
			a.renderLive(snap)
		case state.Errored:
			fmt.Fprintln(a.out, styleError.Render("refresh failed: "+snap.Error))
		}
	})
	defer unsubscribe()

	err = store.Follow(ctx, events)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) renderLive(snap state.Snapshot) {
	fmt.Fprintln(a.out, styleHeader.Render(fmt.Sprintf("%d assets, %d collections, %d tags",
		len(snap.Assets), len(snap.Collections), len(snap.Tags))))
	if err := a.printAssets(snap.Assets); err != nil {
		fmt.Fprintln(a.out, styleError.Render(err.Error()))
	}
}
