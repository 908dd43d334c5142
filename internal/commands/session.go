package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/commtrace-dev/commtrace/internal/session"
)

func newSessionCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Export and import session documents",
	}

	cmd.AddCommand(newSessionExportCommand(configPath))
	cmd.AddCommand(newSessionImportCommand(configPath))

	return cmd
}

func newSessionExportCommand(configPath *string) *cobra.Command {
	var files slotFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Ingest export files and write a session JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			slots, err := files.slots(cmd)
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				return fmt.Errorf("nothing to export: give at least one of --messages, --calls, --contacts, --bank")
			}

			store, err := runBatch(cfg, slots)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating session file: %w", err)
			}
			defer f.Close()
			return session.Export(f, store.Data())
		},
	}

	files.register(cmd)
	cmd.Flags().StringVar(&out, "out", "session.json", "output session file")

	return cmd
}

func newSessionImportCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a session JSON document and print its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening session file: %w", err)
			}
			defer f.Close()

			data, err := session.Import(f)
			if err != nil {
				return err
			}

			store := session.NewStore(cfg.Limits())
			if cfg.Owner.Number != "" {
				store.PinOwner(cfg.Owner.Number)
			}
			store.Replace(data)

			printReport(cmd.OutOrStdout(), store)
			return nil
		},
	}
	return cmd
}
