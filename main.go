// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"os"

	"github.com/CrawX/go-imap-correspondents/app"

	"github.com/spf13/cobra"
)

func main() {
	options := &app.Options{}
	exitCode := 0

	rootCmd := &cobra.Command{
		Use:   "go-imap-correspondents",
		Short: "Export the correspondents and contacts of your mail accounts",
		Long: `go-imap-correspondents collects the senders and recipients of a mail folder
from IMAP or local mail accounts, ranks them by how often they were contacted and
exports them as CSV, JSON, SQLite or a terminal table. Without --recipients the
address book contacts of an account are exported instead.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			exitCode = app.Run(options, cmd.OutOrStdout())
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&options.ConfigFile, "config", "c", "config.toml", "config file")
	flags.StringVar(&options.Loglevel, "loglevel", "", "log level (debug, info, warn, error), overrides the config")
	flags.StringVarP(&options.Output, "output", "o", "", "base path of exported files (default recipients_/contacts_ plus timestamp)")

	flags.BoolVarP(&options.Recipients, "recipients", "r", false, "export correspondents instead of contacts")
	flags.StringVarP(&options.MailFolder, "mailfolder", "m", "", "logical mail folder to collect from, e.g. Inbox or \"Sent Items\" (default from config)")
	flags.IntVar(&options.Limit, "limit", -1, "maximum mails per folder, 0 for no limit (default from config)")
	flags.StringVarP(&options.Account, "account", "a", "", "only use the account with this address")
	flags.BoolVar(&options.AllAccounts, "all-accounts", false, "collect from all configured accounts")
	flags.StringVarP(&options.ContactsFolder, "folder", "f", "", "contacts folder path (default Contacts)")

	flags.BoolVar(&options.ListAccounts, "list-accounts", false, "list configured accounts and exit")
	flags.BoolVarP(&options.ListFolders, "list", "l", false, "list the folder tree of the account and exit")

	flags.BoolVar(&options.CSV, "csv", false, "export CSV (default if no format is selected)")
	flags.BoolVar(&options.JSON, "json", false, "export JSON")
	flags.BoolVar(&options.Matrix, "matrix", false, "print a table to stdout")
	flags.StringVar(&options.SQLite, "sqlite", "", "append the run to this sqlite database")
	flags.BoolVar(&options.Highlight, "highlight", false, "highlight own accounts in the table")

	rootCmd.MarkFlagsMutuallyExclusive("account", "all-accounts")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}
