// SPDX-License-Identifier: EPL-2.0

// Package fileutil writes output files so readers never observe a partial
// file and concurrent writers to one path are serialized.
package fileutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// LockSuffix is appended to the output path to name its lock file. The
// lock file is left in place after the write.
const LockSuffix = ".lock"

const (
	lockRetryDelay = 50 * time.Millisecond
	writeBufSize   = 64 << 10
)

// WriteAtomic holds an exclusive flock on path+LockSuffix, lets write fill
// a temp file in path's directory, then syncs it and renames it over path.
// When write or any later step fails the temp file is removed and path is
// left as it was.
//
// Waiting for the lock stops when ctx is done.
func WriteAtomic(ctx context.Context, path string, write func(w io.Writer) error) (err error) {
	lock := flock.New(path + LockSuffix)

	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("lock %s: %w", path, context.Cause(ctx))
	}
	defer func() {
		err = errors.Join(err, lock.Unlock())
	}()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriterSize(tmp, writeBufSize)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}

	committed = true
	return nil
}
