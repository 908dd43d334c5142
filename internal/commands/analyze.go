package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/commtrace-dev/commtrace/internal/config"
	"github.com/commtrace-dev/commtrace/internal/decode"
	"github.com/commtrace-dev/commtrace/internal/session"
)

// slotFlags collects the per-kind file lists shared by analyze and
// session export.
type slotFlags struct {
	messages []string
	calls    []string
	contacts []string
	bank     []string
}

func (f *slotFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.messages, "messages", nil, "SMS export file (repeatable)")
	cmd.Flags().StringArrayVar(&f.calls, "calls", nil, "call log export file (repeatable)")
	cmd.Flags().StringArrayVar(&f.contacts, "contacts", nil, "contact list file (repeatable)")
	cmd.Flags().StringArrayVar(&f.bank, "bank", nil, "bank statement file (repeatable)")
}

// slots materializes the named files into upload slots. A flag that was
// never set leaves its kind absent; a set flag with no surviving paths
// still produces a (clearing) slot.
func (f *slotFlags) slots(cmd *cobra.Command) (session.Slots, error) {
	slots := make(session.Slots)

	load := func(flag string, kind decode.Kind, paths []string) error {
		if !cmd.Flags().Changed(flag) {
			return nil
		}
		files := []session.File{}
		for _, path := range paths {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			files = append(files, session.File{Name: path, Data: data})
		}
		slots[kind] = files
		return nil
	}

	if err := load("messages", decode.KindMessage, f.messages); err != nil {
		return nil, err
	}
	if err := load("calls", decode.KindCall, f.calls); err != nil {
		return nil, err
	}
	if err := load("contacts", decode.KindContact, f.contacts); err != nil {
		return nil, err
	}
	if err := load("bank", decode.KindBank, f.bank); err != nil {
		return nil, err
	}
	return slots, nil
}

func newAnalyzeCommand(configPath *string) *cobra.Command {
	var files slotFlags
	var saveSession string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ingest export files and print the derived statistics",
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
				return fmt.Errorf("nothing to analyze: give at least one of --messages, --calls, --contacts, --bank")
			}

			store, err := runBatch(cfg, slots)
			if err != nil {
				return err
			}

			if saveSession != "" {
				f, err := os.Create(saveSession)
				if err != nil {
					return fmt.Errorf("creating session file: %w", err)
				}
				defer f.Close()
				if err := session.Export(f, store.Data()); err != nil {
					return err
				}
			}

			printReport(cmd.OutOrStdout(), store)
			return nil
		},
	}

	files.register(cmd)
	cmd.Flags().StringVar(&saveSession, "save-session", "", "write the session document to this JSON file")

	return cmd
}

// runBatch processes one upload batch into a fresh store. The store's
// failure message is surfaced as the command error.
func runBatch(cfg *config.Config, slots session.Slots) (*session.Store, error) {
	store := session.NewStore(cfg.Limits())
	if cfg.Owner.Number != "" {
		store.PinOwner(cfg.Owner.Number)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	uploader := session.NewUploader(store, logger, cfg.Log.Dir)

	if _, err := uploader.Upload(slots); err != nil {
		return nil, fmt.Errorf("%s", store.Err())
	}
	return store, nil
}
