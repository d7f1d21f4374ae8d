// SPDX-License-Identifier: GPL-3.0-or-later
package walker

import (
	"strings"

	"github.com/CrawX/go-imap-correspondents/domain"
)

// folderRule matches a real, possibly localized, folder against a logical folder name.
// Names are compared lowercased against the folder's leaf name.
type folderRule struct {
	Attributes []string
	Contains   []string
	Equals     []string
}

func (r *folderRule) matches(folder *domain.Folder) bool {
	for _, attr := range folder.Attributes {
		for _, want := range r.Attributes {
			if strings.EqualFold(attr, want) {
				return true
			}
		}
	}

	name := strings.ToLower(folder.Leaf())
	for _, c := range r.Contains {
		if strings.Contains(name, c) {
			return true
		}
	}
	for _, e := range r.Equals {
		if name == e {
			return true
		}
	}
	return false
}

var (
	inboxRule = &folderRule{
		Contains: []string{"inbox"},
		Equals:   []string{"postvak in"},
	}
	sentRule = &folderRule{
		Attributes: []string{`\Sent`},
		Contains:   []string{"sent", "verzonden"},
	}
	outboxRule = &folderRule{
		Contains: []string{"outbox", "postvak uit"},
	}
	draftsRule = &folderRule{
		Attributes: []string{`\Drafts`},
		Contains:   []string{"draft", "concepten"},
	}
	contactsRule = &folderRule{
		Contains: []string{"contact", "contacten", "kontakte"},
	}
)

// folderAliases maps lowercased logical folder names to their matching rules. New
// locales only need entries here.
var folderAliases = map[string]*folderRule{
	"inbox":      inboxRule,
	"sent":       sentRule,
	"sent items": sentRule,
	"sentmail":   sentRule,
	"outbox":     outboxRule,
	"drafts":     draftsRule,
	"contacts":   contactsRule,
}

// slashPath spells the folder name with "/" separators whatever the provider uses.
func slashPath(f *domain.Folder) string {
	if len(f.Delimiter) == 0 || f.Delimiter == "/" {
		return f.Name
	}
	return strings.ReplaceAll(f.Name, f.Delimiter, "/")
}

// ResolveFolder finds the folder a logical name refers to. Shallow folders are preferred
// over nested ones, listing order breaks ties. Unknown logical names are compared
// case-insensitively against the full path and the leaf folder name.
func ResolveFolder(folders []*domain.Folder, logicalName string) *domain.Folder {
	rule, ok := folderAliases[strings.ToLower(logicalName)]

	var found *domain.Folder
	for _, f := range folders {
		var match bool
		if ok {
			match = rule.matches(f)
		} else {
			match = strings.EqualFold(slashPath(f), logicalName) || strings.EqualFold(f.Leaf(), logicalName)
		}

		if match && (found == nil || f.Depth() < found.Depth()) {
			found = f
		}
	}

	return found
}
