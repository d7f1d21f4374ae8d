// SPDX-License-Identifier: GPL-3.0-or-later
package localstore

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/CrawX/go-imap-correspondents/domain"

	"github.com/sirupsen/logrus"
)

const Delimiter = "/"

type Store struct {
	root      string
	directory Directory

	l *logrus.Logger
}

type file struct {
	path    string
	name    string
	kind    domain.ItemKind
	modTime time.Time
}

// isMaildir reports whether dir holds the cur and new sub directories of a maildir.
func isMaildir(dir string) bool {
	for _, sub := range []string{"cur", "new"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}

// MaildirInbox names the inbox of a Maildir++ tree, which is the store root itself.
const MaildirInbox = "INBOX"

// Folders lists every sub directory of the store, maildir internals excluded. A store
// whose root is a maildir is read as a Maildir++ tree: the root is the inbox and the
// dot-prefixed maildirs below it are its subfolders, ".Lists.Go" becoming "Lists/Go".
func (s *Store) Folders() ([]*domain.Folder, error) {
	folders := []*domain.Folder{}
	maildirRoot := isMaildir(s.root)
	if maildirRoot {
		inbox, err := newFolder(s.root, MaildirInbox)
		if err != nil {
			return nil, fmt.Errorf("could not list folders: %w", err)
		}
		folders = append(folders, inbox)
	}

	err := filepath.WalkDir(s.root, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !de.IsDir() || p == s.root {
			return nil
		}
		if isMaildir(filepath.Dir(p)) {
			switch de.Name() {
			case "cur", "new", "tmp":
				return filepath.SkipDir
			}
		}
		if strings.HasPrefix(de.Name(), ".") {
			if maildirRoot && filepath.Dir(p) == s.root && isMaildir(p) {
				folder, err := newFolder(p, maildirPlusName(de.Name()))
				if err != nil {
					return err
				}
				folders = append(folders, folder)
			}
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}

		folder, err := newFolder(p, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		folders = append(folders, folder)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not list folders: %w", err)
	}

	return folders, nil
}

func newFolder(dir, name string) (*domain.Folder, error) {
	files, err := listFiles(dir)
	if err != nil {
		return nil, err
	}

	return &domain.Folder{
		Name:      name,
		Delimiter: Delimiter,
		Messages:  uint32(len(files)),
	}, nil
}

func maildirPlusName(dirName string) string {
	return strings.ReplaceAll(strings.TrimPrefix(dirName, "."), ".", Delimiter)
}

// folderDir maps a folder name back to its directory.
func (s *Store) folderDir(name string) string {
	if isMaildir(s.root) {
		if name == MaildirInbox {
			return s.root
		}
		dotted := filepath.Join(s.root, "."+strings.ReplaceAll(name, Delimiter, "."))
		if isMaildir(dotted) {
			return dotted
		}
	}
	return filepath.Join(s.root, filepath.FromSlash(name))
}

func (s *Store) OpenFolder(folder *domain.Folder) (domain.ItemSource, error) {
	files, err := listFiles(s.folderDir(folder.Name))
	if err != nil {
		return nil, fmt.Errorf("could not open folder: %w", err)
	}

	s.l.WithFields(logrus.Fields{"folder": folder.Name, "files": len(files)}).Debug("Opened folder")

	return &folderSource{
		folder:    folder.Name,
		files:     files,
		directory: s.directory,
	}, nil
}

func (s *Store) Close() error {
	return nil
}

// listFiles returns the items of a folder directory, newest first.
func listFiles(dir string) ([]*file, error) {
	var files []*file
	var err error
	if isMaildir(dir) {
		for _, sub := range []string{"cur", "new"} {
			found, err := readFiles(filepath.Join(dir, sub), true)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		}
	} else {
		files, err = readFiles(dir, false)
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].name < files[j].name
		}
		return files[i].modTime.After(files[j].modTime)
	})

	return files, nil
}

func readFiles(dir string, maildir bool) ([]*file, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := []*file{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		info, err := e.Info()
		if err != nil {
			return nil, err
		}

		files = append(files, &file{
			path:    filepath.Join(dir, e.Name()),
			name:    e.Name(),
			kind:    kindOf(e.Name(), maildir),
			modTime: info.ModTime(),
		})
	}

	return files, nil
}

func kindOf(name string, maildir bool) domain.ItemKind {
	if maildir {
		return domain.KindMail
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".eml":
		return domain.KindMail
	case ".vcf":
		return domain.KindContact
	}
	return domain.KindOther
}

type folderSource struct {
	folder    string
	files     []*file
	next      int
	directory Directory
}

func (s *folderSource) Count() int {
	return len(s.files)
}

func (s *folderSource) Next() (domain.Item, error) {
	if s.next >= len(s.files) {
		return nil, io.EOF
	}

	f := s.files[s.next]
	s.next++

	name := s.folder + Delimiter + f.name

	var item domain.Item
	var err error
	switch f.kind {
	case domain.KindMail:
		item, err = readMail(f.path, s.directory)
	case domain.KindContact:
		item, err = readContact(f.path)
	default:
		item = &otherItem{}
	}
	if err != nil {
		return nil, &domain.ItemError{Item: name, Err: err}
	}

	return item, nil
}

func (s *folderSource) Close() error {
	s.files = nil
	return nil
}

type otherItem struct{}

func (o *otherItem) Kind() domain.ItemKind {
	return domain.KindOther
}
