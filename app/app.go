// SPDX-License-Identifier: GPL-3.0-or-later
package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CrawX/go-imap-correspondents/config"
	"github.com/CrawX/go-imap-correspondents/domain"
	"github.com/CrawX/go-imap-correspondents/export"
	"github.com/CrawX/go-imap-correspondents/ledger"
	"github.com/CrawX/go-imap-correspondents/log"
	"github.com/CrawX/go-imap-correspondents/persistence"
	"github.com/CrawX/go-imap-correspondents/walker"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type Options struct {
	ConfigFile string
	Loglevel   string

	// Output is the base path of exported files, empty selects a timestamped name
	Output string

	Recipients bool
	MailFolder string
	// Limit overrides the configured limit when not negative
	Limit       int
	Account     string
	AllAccounts bool

	ContactsFolder string

	ListAccounts bool
	ListFolders  bool

	CSV       bool
	JSON      bool
	Matrix    bool
	SQLite    string
	Highlight bool
}

type App struct {
	options  *Options
	config   *config.Config
	provider domain.Provider

	stdout   io.Writer
	location *time.Location
	now      func() time.Time

	l *logrus.Logger
}

// Run executes one invocation and returns the process exit status.
func Run(options *Options, stdout io.Writer) int {
	log.InitLogging("info")
	l := log.Logger(log.LOG_MAIN)

	if len(options.Loglevel) > 0 {
		log.SetLogLevel(options.Loglevel)
	}

	err := config.LoadEnv(options.ConfigFile)
	if err != nil {
		l.WithField("error", err).Warn("Could not load environment file")
	}

	conf, err := config.ReadConfig(options.ConfigFile)
	if err != nil {
		l.WithField("error", err).Error("Could not load config")
		return 1
	}

	if conf.Loglevel != nil && len(options.Loglevel) == 0 {
		log.SetLogLevel(*conf.Loglevel)
	}

	return newApp(options, conf, newConfigProvider(conf, config.OpenKeyring), stdout).run()
}

func newApp(options *Options, conf *config.Config, provider domain.Provider, stdout io.Writer) *App {
	return &App{
		options:  options,
		config:   conf,
		provider: provider,
		stdout:   stdout,
		location: time.Local,
		now:      time.Now,
		l:        log.Logger(log.LOG_MAIN),
	}
}

func (a *App) run() int {
	switch {
	case a.options.ListAccounts:
		return a.listAccounts()
	case a.options.ListFolders:
		return a.listFolders()
	case a.options.Recipients:
		return a.exportRecipients()
	}
	return a.exportContacts()
}

func (a *App) walkerConfig() []walker.ConfigFunc {
	configs := []walker.ConfigFunc{}

	folder := a.config.MailFolder
	if len(a.options.MailFolder) > 0 {
		folder = a.options.MailFolder
	}
	configs = append(configs, walker.MailFolder(folder))

	limit := a.config.Limit
	if a.options.Limit >= 0 {
		limit = a.options.Limit
	}
	configs = append(configs, walker.Limit(limit))

	if a.options.AllAccounts {
		configs = append(configs, walker.AllAccounts())
	} else if len(a.options.Account) > 0 {
		configs = append(configs, walker.Account(a.options.Account))
	}

	return configs
}

// formats returns the selected file formats, csv if nothing was selected at all.
func (a *App) formats() (csv, json, matrix bool) {
	csv, json, matrix = a.options.CSV, a.options.JSON, a.options.Matrix
	if !csv && !json && !matrix && len(a.options.SQLite) == 0 {
		csv = true
	}
	return
}

func (a *App) exportRecipients() int {
	w, err := walker.NewWalker(a.provider, a.walkerConfig()...)
	if err != nil {
		a.l.WithField("error", err).Error("Invalid options")
		return 1
	}

	a.l.WithFields(logrus.Fields{
		"folder":      w.MailFolder(),
		"account":     a.options.Account,
		"allaccounts": a.options.AllAccounts,
	}).Info("Collecting correspondents")

	collected, processed, err := w.Walk()
	if err != nil {
		a.l.WithField("error", err).Error("Could not collect correspondents")
		return 1
	}

	accounts, err := a.provider.Accounts()
	if err != nil {
		a.l.WithField("error", err).Error("Could not list accounts")
		return 1
	}

	rows := ledger.Classify(ledger.Rank(collected), ledger.OwnAccountSet(accounts), a.location)

	csv, json, matrix := a.formats()
	base := outputBase(a.options.Output, recipientsPrefix, a.now())
	written := []string{}

	var errs error
	if csv {
		path := outputPath(base, ".csv")
		errs = multierr.Append(errs, a.record(&written, "CSV", path, export.ExportCSV(path, rows)))
	}
	if json {
		path := outputPath(base, ".json")
		errs = multierr.Append(errs, a.record(&written, "JSON", path, export.ExportJSON(path, rows)))
	}
	if len(a.options.SQLite) > 0 {
		_, err := persistence.ExportSQLite(a.options.SQLite, w.MailFolder(), processed, rows)
		errs = multierr.Append(errs, a.record(&written, "SQLite", a.options.SQLite, err))
	}
	if matrix {
		errs = multierr.Append(errs, export.WriteTable(a.stdout, rows, export.TableOptions{HighlightOwn: a.options.Highlight}))
	}

	fmt.Fprintf(a.stdout, "\nProcessed %d mails, found %d unique correspondents\n", processed, len(rows))
	return a.finish(written, errs)
}

func (a *App) exportContacts() int {
	w, err := walker.NewWalker(a.provider, a.walkerConfig()...)
	if err != nil {
		a.l.WithField("error", err).Error("Invalid options")
		return 1
	}

	contacts, err := w.Contacts(a.options.ContactsFolder)
	if err != nil {
		a.l.WithField("error", err).Error("Could not collect contacts")
		return 1
	}

	csv, json, matrix := a.formats()
	base := outputBase(a.options.Output, contactsPrefix, a.now())
	written := []string{}

	var errs error
	if csv {
		path := outputPath(base, ".csv")
		errs = multierr.Append(errs, a.record(&written, "CSV", path, export.ExportContactsCSV(path, contacts)))
	}
	if json {
		path := outputPath(base, ".json")
		errs = multierr.Append(errs, a.record(&written, "JSON", path, export.ExportContactsJSON(path, contacts)))
	}
	if len(a.options.SQLite) > 0 {
		a.l.Warn("SQLite export is only available for correspondents")
	}
	if matrix {
		errs = multierr.Append(errs, export.WriteContactsTable(a.stdout, contacts))
	}

	fmt.Fprintf(a.stdout, "\nFound %d contacts\n", len(contacts))
	return a.finish(written, errs)
}

// record notes a written file or logs why it could not be written.
func (a *App) record(written *[]string, format, path string, err error) error {
	if err != nil {
		a.l.WithFields(logrus.Fields{"format": format, "path": path, "error": err}).Error("Export failed")
		return err
	}
	*written = append(*written, fmt.Sprintf("%s: %s", format, absPath(path)))
	return nil
}

func (a *App) finish(written []string, errs error) int {
	for _, w := range written {
		fmt.Fprintf(a.stdout, "Exported %s\n", w)
	}

	if errs != nil {
		fmt.Fprintf(a.stdout, "%d export(s) failed\n", len(multierr.Errors(errs)))
		return 1
	}
	return 0
}

func (a *App) listAccounts() int {
	accounts, err := a.provider.Accounts()
	if err != nil {
		a.l.WithField("error", err).Error("Could not list accounts")
		return 1
	}

	fmt.Fprintf(a.stdout, "Configured accounts (%d):\n", len(accounts))
	for i, acc := range accounts {
		name := acc.DisplayName
		if len(name) == 0 {
			name = acc.Address
		}
		fmt.Fprintf(a.stdout, "  %d. %s <%s> [%s] %s\n", i+1, name, acc.Address, acc.Type, acc.Store)
	}
	return 0
}

func (a *App) listFolders() int {
	w, err := walker.NewWalker(a.provider, a.walkerConfig()...)
	if err != nil {
		a.l.WithField("error", err).Error("Invalid options")
		return 1
	}

	account, folders, err := w.Folders()
	if err != nil {
		a.l.WithField("error", err).Error("Could not list folders")
		return 1
	}

	fmt.Fprintf(a.stdout, "Folders of %s:\n", account.Address)
	for _, f := range folders {
		fmt.Fprintf(a.stdout, "%s%s (%d items)\n", strings.Repeat("  ", f.Depth()+1), f.Leaf(), f.Messages)
	}
	return 0
}
