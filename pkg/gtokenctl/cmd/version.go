package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/gtokenctl/pkg/gtokenctl/output"
	"github.com/telekom/gtokenctl/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show gtokenctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetBuildInfo()

			rt, _ := getRuntime(cmd)
			writer := cmd.OutOrStdout()
			format := output.FormatText
			if rt != nil {
				writer = rt.Writer()
				f, err := output.ParseFormat(rt.OutputFormat())
				if err != nil {
					return err
				}
				format = f
			}

			if format == output.FormatText {
				_, _ = fmt.Fprintf(writer, "gtokenctl %s (commit: %s, built: %s, credential env: %s)\n",
					info.Version, info.GitCommit, info.BuildDate, info.CredentialEnv)
				return nil
			}
			return output.WriteObject(writer, format, info)
		},
	}
}
