//go:build !unix

package settings

import "os"

// Without flock only the in-process lock applies.
func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) error { return nil }
