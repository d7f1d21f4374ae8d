// SPDX-License-Identifier: GPL-3.0-or-later
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/CrawX/go-imap-correspondents/log"

	"github.com/sirupsen/logrus"
)

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// writeFile creates path and writes a BOM followed by whatever write produces.
func writeFile(path string, format string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s file: %w", format, err)
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("could not close %s file: %w", format, closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	_, err = w.Write(utf8BOM)
	if err != nil {
		return fmt.Errorf("could not write %s file: %w", format, err)
	}

	err = write(w)
	if err != nil {
		return fmt.Errorf("could not write %s file: %w", format, err)
	}

	err = w.Flush()
	if err != nil {
		return fmt.Errorf("could not write %s file: %w", format, err)
	}

	log.Logger(log.LOG_EXPORT).WithFields(logrus.Fields{"format": format, "path": path}).Debug("Wrote file")
	return nil
}
