package toktx

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"
)

var tempCounter atomic.Uint32

// TempPath returns a fresh .ktx2 path in os.TempDir(). Names combine a
// process-wide counter with a random UUID; the file is not created.
func TempPath() string {
	n := tempCounter.Add(1) - 1
	return filepath.Join(os.TempDir(), fmt.Sprintf("toktx-go-%d-%s.ktx2", n, uuid.New()))
}
