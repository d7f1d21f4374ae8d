// SPDX-License-Identifier: GPL-3.0-or-later
package app

import (
	"fmt"

	"github.com/CrawX/go-imap-correspondents/config"
	"github.com/CrawX/go-imap-correspondents/domain"
	"github.com/CrawX/go-imap-correspondents/imapconnection"
	"github.com/CrawX/go-imap-correspondents/localstore"
)

// configProvider serves the accounts of the config file, each through the provider of
// its type.
type configProvider struct {
	accounts []*domain.Account
	configs  map[*domain.Account]*config.Account

	local       *localstore.Provider
	openKeyring config.KeyringOpener
}

func newConfigProvider(conf *config.Config, openKeyring config.KeyringOpener) *configProvider {
	p := &configProvider{
		configs:     map[*domain.Account]*config.Account{},
		openKeyring: openKeyring,
	}

	for _, c := range conf.Accounts {
		store := c.ImapHost
		if c.Type == config.TypeLocal {
			store = c.Path
		}

		a := &domain.Account{
			Address:     c.Address,
			DisplayName: c.DisplayName,
			Type:        c.Type,
			Store:       store,
			Aliases:     c.Aliases,
		}
		p.accounts = append(p.accounts, a)
		p.configs[a] = c
	}

	p.local = localstore.NewProvider(p.accounts, localstore.NewDirectory(conf.Directory))
	return p
}

func (p *configProvider) Accounts() ([]*domain.Account, error) {
	return p.accounts, nil
}

func (p *configProvider) Open(account *domain.Account) (domain.Store, error) {
	c, ok := p.configs[account]
	if !ok {
		return nil, fmt.Errorf("unknown account %s", account.Address)
	}

	switch c.Type {
	case config.TypeLocal:
		return p.local.Open(account)
	case config.TypeImap:
		password, err := c.ResolvePassword(p.openKeyring)
		if err != nil {
			return nil, err
		}
		conn, err := imapconnection.NewImapConnection(c.ImapHost, c.User, password, c.Compress)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}

	return nil, fmt.Errorf("unsupported account type %s", c.Type)
}
