package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func getCmdList(st *State) *cobra.Command {
	return &cobra.Command{
		Use:       "list [category]",
		Short:     "List the available tools",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"hashing", "encryption", "conversion"},
		RunE: func(_ *cobra.Command, args []string) error {
			category := ""
			if len(args) == 1 {
				category = args[0]
			}

			tools := st.Service.Tools(category)
			if len(tools) == 0 {
				return fmt.Errorf("no tools in category %q", category)
			}

			tw := tabwriter.NewWriter(st.Stdout, 0, 0, 2, ' ', 0)
			for _, t := range tools {
				modes := "forward"
				switch {
				case t.Verifiable():
					modes += ", verify"
				case len(t.BackwardFields) > 0:
					modes += ", backward"
				}
				fmt.Fprintf(tw, "%s/%s\t%s\t%s\n", t.Category, t.ID, t.Title, modes)
			}
			return tw.Flush()
		},
	}
}

func getCmdCosts(st *State) *cobra.Command {
	return &cobra.Command{
		Use:   "costs <category>/<tool>",
		Short: "Show the selectable work factors of a tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			category, id, err := parseRef(args[0])
			if err != nil {
				return err
			}

			t, err := st.Service.Tool(category, id)
			if err != nil {
				return err
			}
			if len(t.Costs) == 0 {
				fmt.Fprintf(st.Stdout, "%s/%s has no selectable cost\n", category, id)
				return nil
			}

			option := ""
			for _, f := range t.Fields {
				if f.Cost != "" {
					option = f.Name
				}
			}

			values := make([]string, 0, len(t.Costs))
			for _, c := range t.Costs {
				values = append(values, c.String())
			}
			fmt.Fprintf(st.Stdout, "%s: %s\n", option, strings.Join(values, ", "))
			return nil
		},
	}
}

func getCmdKeygen(st *State) *cobra.Command {
	var bits int

	keygenCmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA key pair in PEM form",
		Example: `  snaptools keygen --bits 4096 > key.pem
  snaptools run encryption/rsa -f public_key="$(cat pub.pem)" -f text=hello`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pair, err := st.Service.GenerateRSAKey(cmd.Context(), bits)
			if err != nil {
				return err
			}

			fmt.Fprint(st.Stdout, pair.PrivateKey)
			fmt.Fprint(st.Stdout, pair.PublicKey)
			return nil
		},
	}

	keygenCmd.Flags().IntVar(&bits, "bits", 0, "key size: 1024, 2048 or 4096 (default 2048)")
	return keygenCmd
}
