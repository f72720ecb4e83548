package archiver_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/panth977-packages/logs"
	"github.com/panth977-packages/logs/archiver"
	"github.com/panth977-packages/logs/filer"
	"github.com/panth977-packages/logs/mocks"
	"github.com/stretchr/testify/assert"
)

func TestPost(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	layout := &archiver.Layout{PostArchive: func(s1, s2 string) {
		assert.Equal("string1", s1)
		assert.Equal("string2", s2)
	}}
	layout.Post("string1", "string2")

	layout.PostArchive = nil
	layout.Post("string1", "string2")
}

func TestDirs(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	// test archive dir.
	layout := &archiver.Layout{ArchiveDir: filepath.Join("/", "var", "log", "archives")}
	f, err := layout.Dirs(filepath.Join("/", "var", "log", "service.log"))
	assert.Equal([]string{filepath.Join("/", "var", "log"), filepath.Join("/", "var", "log", "archives")},
		f, "the wrong directories were returned")
	assert.NoError(err, "this should not produce an error")
	assert.Equal(filer.Default(), layout.Filer)
	assert.Equal(archiver.DefaultJoiner, layout.Joiner)
	assert.Equal(archiver.FormatDefault, layout.Format)
	assert.Equal(logs.FileMode, layout.FileMode)
}

func TestArchiveOne(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockFiler := mocks.NewMockFiler(mockCtrl)
	layout := &archiver.Layout{
		Filer:    mockFiler,
		FileMode: 0o640,
		UseUTC:   true,
		Format:   archiver.FormatNoSecnd,
		Joiner:   archiver.DefaultJoiner,
	}
	data := []byte("trimmed region\n")
	newName := filepath.Join("/", "var", "log", "service"+layout.Joiner+time.Now().UTC().Format(layout.Format)+".log")

	// Basic test representing a first archive (no existing files).
	// The configured mode, not a package constant, reaches the write.
	mockFiler.EXPECT().WriteFile(newName, data, os.FileMode(0o640))
	mockFiler.EXPECT().ReadDir(filepath.Join("/", "var", "log"))
	//
	file, err := layout.Archive(filepath.Join("/", "var", "log", "service.log"), data)
	assert.Equal(newName, file)
	assert.NoError(err)
}

// Make fake files to fake delete.
func testFakeFiles(mockCtrl *gomock.Controller, count int) ([]*mocks.MockFileInfo, []os.FileInfo) {
	var (
		fakes = make([]*mocks.MockFileInfo, count)
		files = make([]os.FileInfo, count)
	)

	for i := 0; i < count; i++ {
		fake := mocks.NewMockFileInfo(mockCtrl)
		fakes[i] = fake
		files[i] = fake
	}

	return fakes, files
}

func TestArchiveDelete(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockFiler := mocks.NewMockFiler(mockCtrl)
	fakes, fakeFiles := testFakeFiles(mockCtrl, 10)
	layout := &archiver.Layout{
		ArchiveDir: filepath.Join("/", "var", "log", "archives"),
		Filer:      mockFiler,
		FileMode:   logs.FileMode,
		UseUTC:     true,
		Format:     archiver.FormatNoSecnd,
		Joiner:     archiver.DefaultJoiner,
		FileAge:    time.Minute,
		FileCount:  2,
	}
	data := []byte("trimmed region\n")
	newName := filepath.Join(layout.ArchiveDir,
		"service"+layout.Joiner+time.Now().UTC().Format(layout.Format)+".log")

	mockFiler.EXPECT().WriteFile(newName, data, logs.FileMode)
	mockFiler.EXPECT().ReadDir(layout.ArchiveDir).Return(fakeFiles, nil)

	for idx := range fakes {
		// We returned 10 fake files, so give them 10 fake file names.
		// Each name is 10 seconds older than the previous. We then test for the age
		// and if it's older than our FileAge value it should get deleted.
		fileTime := time.Now().Add(-time.Duration(idx*10) * time.Second).UTC()
		fileName := "service" + layout.Joiner + fileTime.Format(layout.Format) + ".log"
		fakes[idx].EXPECT().Name().Return(fileName)

		if idx >= layout.FileCount {
			mockFiler.EXPECT().Remove(filepath.Join(layout.ArchiveDir, fileName))
		} else if time.Since(fileTime) > layout.FileAge {
			mockFiler.EXPECT().Remove(filepath.Join(layout.ArchiveDir, fileName))
		}
	}

	//
	file, err := layout.Archive(filepath.Join("/", "var", "log", "service.log"), data)
	assert.Equal(newName, file)
	assert.NoError(err)
}

// End to end on a real temp dir: archive twice, oldest pruned by count.
func TestArchiveCount(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	testDir := t.TempDir()
	testFile := filepath.Join(testDir, "service.log")
	layout := &archiver.Layout{FileCount: 1}

	_, err := layout.Dirs(testFile) // sets the defaults.
	assert.NoError(err)

	first, err := layout.Archive(testFile, []byte("one\n"))
	assert.NoError(err)

	time.Sleep(5 * time.Millisecond) // distinct msec stamps.

	second, err := layout.Archive(testFile, []byte("two\n"))
	assert.NoError(err)
	assert.NotEqual(first, second)

	_, err = os.Stat(first)
	assert.ErrorIs(err, os.ErrNotExist, "the oldest archive must be pruned")

	content, err := os.ReadFile(second)
	assert.NoError(err)
	assert.Equal("two\n", string(content))
}
