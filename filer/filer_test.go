package filer_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/panth977-packages/logs/filer"
	"github.com/stretchr/testify/assert"
)

// Our interface must satisfy a filer.Filer.
var _ filer.Filer = (*MyFiler)(nil)

// Create a custom Filer that overrides only the Remove method.
type MyFiler struct {
	filer.File
}

func (f *MyFiler) Remove(fileName string) error {
	fmt.Printf("Removed %s\n", fileName)

	return nil
}

func ExampleFile() {
	// Pass s into any package that uses a filer.Filer.
	s := &MyFiler{}
	_ = s.Remove("old.file")
	// Output:
	// Removed old.file
}

func TestStat(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	testFile := filepath.Join(t.TempDir(), "stat.log")
	_, err := filer.Stat(testFile)
	assert.Error(err, "stat of a missing file must fail")

	assert.NoError(os.WriteFile(testFile, []byte("abc"), 0o600))

	info, err := filer.Stat(testFile)
	assert.NoError(err)
	assert.EqualValues(3, info.Size())

	if info.CreateTime.IsZero() {
		// Platforms without a birth time leave CreateTime zero so callers
		// can fall back to ModTime.
		assert.WithinDuration(time.Now(), info.ModTime(), time.Minute,
			"a freshly made file was modified about now")
	} else {
		assert.WithinDuration(time.Now(), info.CreateTime, time.Minute,
			"a freshly made file was created about now")
	}
}
