package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newScriptCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Manage stored replay scripts",
	}
	cmd.AddCommand(
		newScriptImportCommand(a),
		newScriptListCommand(a),
		newScriptShowCommand(a),
		newScriptDeleteCommand(a),
	)
	return cmd
}

func newScriptImportCommand(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store a script file (.yaml or text)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := readScriptFile(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				sc.Name = name
			}

			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Save(cmd.Context(), sc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %q (%d steps)\n", sc.Name, len(sc.Steps))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "store under this name instead of the one in the file")
	return cmd
}

func newScriptListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			list, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored scripts.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTEPS\tDESCRIPTION")
			for _, s := range list {
				fmt.Fprintf(w, "%s\t%d\t%s\n", s.Name, s.Steps, s.Description)
			}
			return w.Flush()
		},
	}
}

func newScriptShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored script as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			sc, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return sc.Save(cmd.OutOrStdout())
		},
	}
}

func newScriptDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a stored script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
			return nil
		},
	}
}
