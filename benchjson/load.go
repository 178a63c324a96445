// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchjson

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// A CaseNotFoundError reports that a case directory does not exist.
type CaseNotFoundError struct {
	Case string
	Root string
}

func (e *CaseNotFoundError) Error() string {
	return fmt.Sprintf("case %q not found in %s", e.Case, e.Root)
}

// A MalformedResultFileError reports a result file that could not be
// decoded.
type MalformedResultFileError struct {
	Path string
	Err  error
}

func (e *MalformedResultFileError) Error() string {
	return fmt.Sprintf("%s: malformed result file: %v", e.Path, e.Err)
}

func (e *MalformedResultFileError) Unwrap() error {
	return e.Err
}

// A Case is the set of result files of one run configuration.
type Case struct {
	Name  string
	Dir   string
	Files map[string]*File // keyed by File.Stem
}

// Ext is the file extension of result files.
const Ext = ".json"

// LoadCase loads every result file directly inside root/name.
// Subdirectories and files without the Ext extension are not read.
//
// If any file fails to decode, LoadCase returns that error and no
// Case.
func LoadCase(root, name string) (*Case, error) {
	dir := filepath.Join(root, name)
	if name == "" || !isDir(dir) {
		return nil, &CaseNotFoundError{Case: name, Root: root}
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	c := &Case{Name: name, Dir: dir, Files: make(map[string]*File)}
	for _, ent := range ents {
		if !ent.Type().IsRegular() || filepath.Ext(ent.Name()) != Ext {
			continue
		}
		f, err := readFile(filepath.Join(dir, ent.Name()))
		if err != nil {
			return nil, err
		}
		c.Files[f.Stem] = f
	}
	return c, nil
}

func readFile(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Decode(r, path)
}

// ListCases returns the names of the case directories under root,
// sorted.
func ListCases(root string) ([]string, error) {
	ents, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, ent := range ents {
		if ent.IsDir() && !strings.HasPrefix(ent.Name(), ".") {
			names = append(names, ent.Name())
		}
	}
	return names, nil
}

// Stems returns the stems of c's files, sorted.
func (c *Case) Stems() []string {
	stems := make([]string, 0, len(c.Files))
	for s := range c.Files {
		stems = append(stems, s)
	}
	sort.Strings(stems)
	return stems
}

// Records returns the records of all of c's files, in stem order.
func (c *Case) Records() []Record {
	var recs []Record
	for _, s := range c.Stems() {
		recs = append(recs, c.Files[s].Records...)
	}
	return recs
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
