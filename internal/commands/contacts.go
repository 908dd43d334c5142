package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/commtrace-dev/commtrace/internal/directory"
	"github.com/commtrace-dev/commtrace/internal/model"
	"github.com/commtrace-dev/commtrace/internal/normalize"
)

func newContactsCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Edit and inspect a contact directory file",
	}

	cmd.AddCommand(newContactsListCommand())
	cmd.AddCommand(newContactsAddCommand(configPath))

	return cmd
}

func newContactsListCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List directory entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := directory.Load(file)
			if err != nil {
				return err
			}
			for _, c := range svc.All() {
				if c.FullName != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c.Name, c.Phone, c.FullName)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Name, c.Phone)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "contacts.csv", "contact directory CSV file")
	return cmd
}

func newContactsAddCommand(configPath *string) *cobra.Command {
	var file, name, phone, fullName, onDuplicate string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a directory entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if onDuplicate == "" {
				onDuplicate = cfg.Directory.DuplicatePolicy
			}
			policy, err := directory.ParsePolicy(onDuplicate)
			if err != nil {
				return err
			}

			// A missing file starts an empty directory. Any other load
			// failure must not reach Save, which would overwrite the file.
			svc, err := directory.Load(file)
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
				svc = directory.NewService(nil)
			}

			svc.Add(model.Contact{
				Name:     normalize.Sanitize(name),
				Phone:    normalize.Sanitize(phone),
				FullName: normalize.Sanitize(fullName),
			}, policy)

			return svc.Save(file)
		},
	}

	cmd.Flags().StringVar(&file, "file", "contacts.csv", "contact directory CSV file")
	cmd.Flags().StringVar(&name, "name", "", "contact display name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number (required)")
	_ = cmd.MarkFlagRequired("phone")
	cmd.Flags().StringVar(&fullName, "full-name", "", "optional secondary name")
	cmd.Flags().StringVar(&onDuplicate, "on-duplicate", "", "duplicate policy: replace, keep-both or skip")

	return cmd
}
