// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: persist/biminfo.go
// Summary: The biminfo cursor-persistence store (spec.md §6): a
// plain-text file of ">ABS_PATH LINE COL" records, line/col right-padded
// to 20 decimal digits so a record can be rewritten in place without
// resizing the file. Grounded on apps/texelterm/parser/disk_history.go's
// plain-file read/rewrite idiom.
package persist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const fieldWidth = 20

// Store is an in-memory view of a biminfo file, loaded once and flushed
// back to disk by Save.
type Store struct {
	path    string
	records map[string][2]int // absPath -> [line, col]
	order   []string          // preserves on-disk record order for stable rewrites
}

// DefaultPath returns ~/.biminfo, the conventional location named in
// spec.md §6.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".biminfo"), nil
}

// Load reads path, tolerating a missing file (an editor with no prior
// history starts with an empty Store). Lines starting with '#' are
// comments and malformed lines are skipped rather than treated as fatal,
// since a corrupted biminfo must never block startup.
func Load(path string) (*Store, error) {
	s := &Store{path: path, records: make(map[string][2]int)}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") || !strings.HasPrefix(line, ">") {
			continue
		}
		fields := strings.Fields(line[1:])
		if len(fields) != 3 {
			continue
		}
		absPath := fields[0]
		lineNo, err1 := strconv.Atoi(fields[1])
		col, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			continue
		}
		if _, seen := s.records[absPath]; !seen {
			s.order = append(s.order, absPath)
		}
		s.records[absPath] = [2]int{lineNo, col}
	}
	return s, scanner.Err()
}

// Fetch returns the last-recorded (line, col) for absPath, or ok=false if
// there is no record.
func (s *Store) Fetch(absPath string) (line, col int, ok bool) {
	rec, ok := s.records[absPath]
	if !ok {
		return 0, 0, false
	}
	return rec[0], rec[1], true
}

// Put records the cursor position for absPath, overwriting any prior
// entry for the same path.
func (s *Store) Put(absPath string, line, col int) {
	if _, seen := s.records[absPath]; !seen {
		s.order = append(s.order, absPath)
	}
	s.records[absPath] = [2]int{line, col}
}

// Save rewrites the whole store to disk, each record's line/col fields
// right-padded to fieldWidth digits so a future in-place rewrite of a
// single record (not implemented here — vied always rewrites the whole
// file, simpler and safe for the file sizes this store reaches) would
// still be possible without resizing.
func (s *Store) Save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# vied cursor-position history")
	for _, path := range s.order {
		rec := s.records[path]
		fmt.Fprintf(w, ">%s %s %s\n", path, pad(rec[0]), pad(rec[1]))
	}
	return w.Flush()
}

func pad(n int) string {
	s := strconv.Itoa(n)
	if len(s) >= fieldWidth {
		return s
	}
	return s + strings.Repeat(" ", fieldWidth-len(s))
}
