// Package output names report files and stores them on disk.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrPersist wraps every failure to store a report file.
var ErrPersist = errors.New("persist report")

// maxCollisions bounds the _2, _3, ... suffix search.
const maxCollisions = 1000

// FileName returns yyyyMMdd_HHmmss[_code].pdf for a report generated at now.
// Characters that are unsafe in file names are removed from code.
func FileName(now time.Time, code string) string {
	name := now.Format("20060102_150405")
	if c := sanitize(code); c != "" {
		name += "_" + c
	}
	return name + ".pdf"
}

func sanitize(code string) string {
	code = strings.TrimSpace(code)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			return -1
		case r < ' ':
			return -1
		case r == ' ':
			return '_'
		}
		return r
	}, code)
}

// Persist writes data to dir/name and returns the final path. The directory
// is created on demand. Data goes to a temporary file in the same directory
// that is synced and renamed into place, so a reader never sees a partial
// report. If name is taken, _2, _3, ... is appended before the extension.
func Persist(data []byte, dir, name string) (string, error) {
	if strings.TrimSpace(name) == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: invalid file name %q", ErrPersist, name)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("%w: create directory: %v", ErrPersist, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", ErrPersist, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return "", fmt.Errorf("%w: write: %v", ErrPersist, err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("%w: sync: %v", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close: %v", ErrPersist, err)
	}

	target, err := freePath(dir, name)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return "", fmt.Errorf("%w: rename: %v", ErrPersist, err)
	}
	committed = true
	return target, nil
}

func freePath(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := filepath.Join(dir, name)
	for i := 2; i <= maxCollisions+1; i++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: stat %s: %v", ErrPersist, candidate, err)
		}
		candidate = filepath.Join(dir, stem+"_"+strconv.Itoa(i)+ext)
	}
	return "", fmt.Errorf("%w: too many files named %s", ErrPersist, name)
}
