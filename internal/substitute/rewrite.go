package substitute

import (
	"bytes"
	"os"
	"path/filepath"
)

// apply replaces every occurrence of each key in content. counts holds the
// number of occurrences replaced per key; keys with none are absent.
func apply(content []byte, pairs []Pair) ([]byte, map[string]int) {
	counts := make(map[string]int)
	for _, p := range pairs {
		key := []byte(p.Key)
		n := bytes.Count(content, key)
		if n == 0 {
			continue
		}
		content = bytes.ReplaceAll(content, key, []byte(p.Value))
		counts[p.Key] = n
	}
	return content, counts
}

// rewriteFile replaces path's content through a temporary sibling and a
// rename, keeping the original permission bits. Readers never see a
// half-written file.
func rewriteFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".envstamp-*")
	if err != nil {
		return err
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return err
	}

	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}

	return nil
}
