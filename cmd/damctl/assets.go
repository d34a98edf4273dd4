package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mediavault/internal/client"
	"mediavault/internal/domain/entity"
)

func newListCmd(a *app) *cobra.Command {
	var (
		filters client.Filters
		tags    string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "search"},
		Short:   "List assets, optionally filtered and sorted",
		Long: `List assets.

Examples:
  damctl list --search beach
  damctl list --tags Nature,Travel --sort size --order asc
  damctl list --collection 7d1c...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tags != "" {
				filters.Tags = splitCSV(tags)
			}
			assets, err := a.client().ListAssets(cmd.Context(), filters)
			if err != nil {
				return err
			}
			return a.printAssets(assets)
		},
	}
	cmd.Flags().StringVarP(&filters.Search, "search", "q", "", "Case-insensitive text search")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "Comma-separated tag names; matches any")
	cmd.Flags().StringVarP(&filters.CollectionID, "collection", "c", "", "Collection id")
	cmd.Flags().StringVar(&filters.SortBy, "sort", entity.SortByDate, "Sort by name, date or size")
	cmd.Flags().StringVar(&filters.SortOrder, "order", entity.SortDesc, "Sort order: asc or desc")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <asset-id>",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asset, err := a.client().GetAsset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printAsset(asset)
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	var (
		draft      entity.AssetDraft
		tags       string
		collection string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an asset record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tags != "" {
				draft.Tags = splitCSV(tags)
			}
			if collection != "" {
				draft.CollectionID = &collection
			}
			asset, err := a.client().CreateAsset(cmd.Context(), draft)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(asset)
			}
			a.printSuccess("Created asset %s", asset.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&draft.Title, "title", "", "Asset title")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Asset description")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tag names")
	cmd.Flags().StringVar(&collection, "collection", "", "Collection id")
	cmd.Flags().StringVar(&draft.FileName, "file-name", "", "Original file name")
	cmd.Flags().Int64Var(&draft.FileSize, "file-size", 0, "File size in bytes")
	cmd.Flags().IntVar(&draft.Dimensions.Width, "width", 0, "Image width in pixels")
	cmd.Flags().IntVar(&draft.Dimensions.Height, "height", 0, "Image height in pixels")
	cmd.Flags().StringVar(&draft.Format, "format", "", "File format, e.g. JPEG")
	cmd.Flags().StringVar(&draft.ImageURL, "image-url", "", "Image URL")
	cmd.Flags().StringVar(&draft.Copyright, "copyright", "", "Copyright notice")
	cmd.Flags().StringVar(&draft.UsageRights, "usage-rights", "", "Usage rights")
	return cmd
}

// patchFlags registers the editable asset fields; only flags the user set end
// up in the patch.
type patchFlags struct {
	title, description, tags, collection, imageURL, copyright, usageRights string
	uncategorize                                                           bool
}

func (p *patchFlags) register(fs *pflag.FlagSet, withText bool) {
	if withText {
		fs.StringVar(&p.title, "title", "", "New title")
		fs.StringVar(&p.description, "description", "", "New description")
		fs.StringVar(&p.imageURL, "image-url", "", "New image URL")
	}
	fs.StringVar(&p.tags, "tags", "", "Replace tags with this comma-separated list")
	fs.StringVar(&p.collection, "collection", "", "Move into this collection id")
	fs.BoolVar(&p.uncategorize, "uncategorize", false, "Remove from its collection")
	fs.StringVar(&p.copyright, "copyright", "", "New copyright notice")
	fs.StringVar(&p.usageRights, "usage-rights", "", "New usage rights")
}

func (p *patchFlags) build(fs *pflag.FlagSet) (entity.AssetPatch, error) {
	var patch entity.AssetPatch
	set := func(name string, dst **string, v string) {
		if fs.Changed(name) {
			s := v
			*dst = &s
		}
	}
	set("title", &patch.Title, p.title)
	set("description", &patch.Description, p.description)
	set("image-url", &patch.ImageURL, p.imageURL)
	set("copyright", &patch.Copyright, p.copyright)
	set("usage-rights", &patch.UsageRights, p.usageRights)
	if fs.Changed("tags") {
		tags := splitCSV(p.tags)
		patch.Tags = &tags
	}

	switch {
	case p.uncategorize && fs.Changed("collection"):
		return patch, fmt.Errorf("--collection and --uncategorize are mutually exclusive")
	case p.uncategorize:
		patch.CollectionID = entity.Null()
	case fs.Changed("collection"):
		patch.CollectionID = entity.StringValue(p.collection)
	}
	return patch, nil
}

func newUpdateCmd(a *app) *cobra.Command {
	var flags patchFlags
	cmd := &cobra.Command{
		Use:   "update <asset-id>",
		Short: "Change fields of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := flags.build(cmd.Flags())
			if err != nil {
				return err
			}
			asset, err := a.client().UpdateAsset(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return a.printAsset(asset)
		},
	}
	flags.register(cmd.Flags(), true)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <asset-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an asset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().DeleteAsset(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printSuccess("Deleted asset %s", args[0])
			return nil
		},
	}
}

func newBulkUpdateCmd(a *app) *cobra.Command {
	var flags patchFlags
	cmd := &cobra.Command{
		Use:   "bulk-update <asset-id>...",
		Short: "Apply the same change to several assets; unknown ids are skipped",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := flags.build(cmd.Flags())
			if err != nil {
				return err
			}
			updated, err := a.client().BulkUpdateAssets(cmd.Context(), args, patch)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(updated)
			}
			a.printSuccess("Updated %d of %d assets", len(updated), len(args))
			return nil
		},
	}
	flags.register(cmd.Flags(), false)
	return cmd
}

func newBulkDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bulk-delete <asset-id>...",
		Short: "Delete several assets; unknown ids are skipped",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := a.client().BulkDeleteAssets(cmd.Context(), args)
			if err != nil {
				return err
			}
			a.printSuccess("%d assets deleted successfully", deleted)
			return nil
		},
	}
}

func splitCSV(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
