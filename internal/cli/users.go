package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/videra/data-server/internal/client"
	"github.com/videra/data-server/internal/pagination"
	"github.com/videra/data-server/internal/user"
)

var userColumns = []column[*user.User]{
	{header: "ID", value: func(obj *user.User) string { return obj.ID }},
	{header: "Name", value: func(obj *user.User) string { return obj.Name }},
	{header: "Email", value: func(obj *user.User) string { return obj.Email }},
	{header: "Plan", value: func(obj *user.User) string { return string(obj.Plan) }},
	{header: "Status", value: func(obj *user.User) string { return string(obj.Status) }},
	{header: "Posts", value: func(obj *user.User) string { return strconv.Itoa(obj.TotalPosts) }},
	{header: "Last Login", value: func(obj *user.User) string {
		if obj.LastLogin == nil {
			return "never"
		}
		return obj.LastLogin.Format("2006-01-02 15:04")
	}},
}

func newUsersCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse registered creators",
	}
	cmd.AddCommand(newUsersListCmd(root))
	return cmd
}

func newUsersListCmd(root *rootFlags) *cobra.Command {
	flags := &listFlags{}
	filters := user.Schema.FilterKeys()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered creators",
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := root.client()
			if err != nil {
				return err
			}
			defer api.Close()
			return runList(cmd, root, flags, listing[*user.User]{
				defaults: user.Defaults,
				filters:  filters,
				fetch: func(ctx context.Context, query pagination.Query) client.Result[*pagination.Page[*user.User]] {
					return api.Users(ctx, query)
				},
				columns: userColumns,
			})
		},
	}
	flags.register(cmd, user.Defaults, filters)
	return cmd
}
