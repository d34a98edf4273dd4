package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediavault/internal/domain/entity"
)

func newCollectionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"col"},
		Short:   "List and manage collections",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collections, err := a.client().ListCollections(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(collections)
			}
			t := newTable("ID", "NAME", "DESCRIPTION", "CREATED")
			for _, c := range collections {
				t.add(c.ID, c.Name, c.Description, c.CreatedAt.Format("2006-01-02"))
			}
			fmt.Fprint(a.out, t.render())
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <collection-id>",
		Short: "Show a collection and its assets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := a.client().GetCollection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(detail)
			}
			fmt.Fprintln(a.out, styleHeader.Render(detail.Name))
			if detail.Description != "" {
				fmt.Fprintln(a.out, styleMuted.Render(detail.Description))
			}
			return a.printAssets(detail.Assets)
		},
	}

	var draft entity.CollectionDraft
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client().CreateCollection(cmd.Context(), draft)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(c)
			}
			a.printSuccess("Created collection %s", c.ID)
			return nil
		},
	}
	create.Flags().StringVar(&draft.Name, "name", "", "Collection name")
	create.Flags().StringVar(&draft.Description, "description", "", "Collection description")

	var name, description string
	update := &cobra.Command{
		Use:   "update <collection-id>",
		Short: "Rename or re-describe a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch entity.CollectionPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			c, err := a.client().UpdateCollection(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(c)
			}
			a.printSuccess("Updated collection %s", c.ID)
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "New name")
	update.Flags().StringVar(&description, "description", "", "New description")

	remove := &cobra.Command{
		Use:     "delete <collection-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a collection; its assets become uncategorized",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().DeleteCollection(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printSuccess("Deleted collection %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(show, create, update, remove)
	return cmd
}

func newTagsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List and manage tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := a.client().ListTags(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(tags)
			}
			t := newTable("ID", "NAME")
			for _, tag := range tags {
				t.add(tag.ID, tag.Name)
			}
			fmt.Fprint(a.out, t.render())
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag; names are unique ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := a.client().CreateTag(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(tag)
			}
			a.printSuccess("Created tag %s (%s)", tag.Name, tag.ID)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "delete <tag-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a tag and detach it from every asset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().DeleteTag(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printSuccess("Deleted tag %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, remove)
	return cmd
}
