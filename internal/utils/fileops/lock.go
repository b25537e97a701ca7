package fileops

import (
	"context"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryDelay is how often a contended lock is retried
const lockRetryDelay = 50 * time.Millisecond

// Lock takes an exclusive advisory lock guarding path and returns the function
// that releases it. The lock lives in a "<path>.lock" sibling so the guarded
// file itself can be replaced by rename while the lock is held. Lock blocks
// until the lock is free or ctx is done.
func (f *FileOps) Lock(ctx context.Context, path string) (func(), error) {
	full, err := f.pathValidator.Resolve(path)
	if err != nil {
		return nil, f.errorWrapper.WrapPathError(path, err)
	}

	fl := flock.New(full + ".lock")
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, f.errorWrapper.WrapLockError(path, err)
	}
	if !locked {
		return nil, f.errorWrapper.WrapLockError(path, ctx.Err())
	}

	return func() {
		_ = fl.Unlock()
	}, nil
}
