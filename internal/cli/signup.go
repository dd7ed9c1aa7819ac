package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSignupCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Inspect signup restrictions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "eligibility",
		Short: "Check whether this network may create another free account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := root.client()
			if err != nil {
				return err
			}
			defer api.Close()

			result, err := api.SignupEligibility(cmd.Context()).Unwrap()
			if err != nil {
				return err
			}

			return renderValue(cmd, root.output, result, func(out io.Writer) error {
				w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
				fmt.Fprintf(w, "IP:\t%s\n", result.IP)
				fmt.Fprintf(w, "Allowed:\t%t\n", result.Allowed)
				if result.AccountCount != nil {
					fmt.Fprintf(w, "Accounts:\t%d\n", *result.AccountCount)
				}
				if result.Message != "" {
					fmt.Fprintf(w, "Message:\t%s\n", result.Message)
				}
				return w.Flush()
			})
		},
	})
	return cmd
}
