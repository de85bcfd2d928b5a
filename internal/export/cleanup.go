package export

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

var screenshotExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
}

// listScreenshots returns screenshot files under dir (non-recursive for the
// top level plus one level of capture subdirectories).
func listScreenshots(dir string) []string {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			sub, err := os.ReadDir(path)
			if err != nil {
				continue
			}
			for _, se := range sub {
				if !se.IsDir() && screenshotExtensions[filepath.Ext(se.Name())] {
					files = append(files, filepath.Join(path, se.Name()))
				}
			}
			continue
		}
		if screenshotExtensions[filepath.Ext(e.Name())] {
			files = append(files, path)
		}
	}
	return files
}

// CleanupByCount deletes screenshots beyond the newest keep files (by
// modification time). Returns the number deleted.
func CleanupByCount(dir string, keep int) (int, error) {
	files := listScreenshots(dir)
	if len(files) <= keep {
		return 0, nil
	}

	sort.Slice(files, func(i, j int) bool {
		return mtime(files[i]).After(mtime(files[j]))
	})

	deleted := 0
	var firstErr error
	for _, path := range files[keep:] {
		if err := os.Remove(path); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		deleted++
	}
	return deleted, firstErr
}

// CleanupByAge deletes screenshots older than maxAge. Returns the number
// deleted.
func CleanupByAge(dir string, maxAge time.Duration, now time.Time) (int, error) {
	deleted := 0
	var firstErr error
	for _, path := range listScreenshots(dir) {
		if now.Sub(mtime(path)) <= maxAge {
			continue
		}
		if err := os.Remove(path); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		deleted++
	}
	return deleted, firstErr
}

func mtime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
