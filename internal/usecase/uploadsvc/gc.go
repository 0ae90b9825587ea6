package uploadsvc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// StartGC стартует периодическую очистку брошенных временных файлов передачи.
func StartGC(root string, ttl time.Duration, every time.Duration) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-ticker.C:
				_, _ = SweepOnce(root, ttl)
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}

// SweepOnce удаляет временные файлы передачи старше ttl и возвращает их количество.
// Такие файлы остаются, только если процесс упал посреди потоковой загрузки.
func SweepOnce(root string, ttl time.Duration) (int, error) {
	if root == "" {
		root = "."
	}

	now := time.Now()
	removed := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// недоступные подкаталоги пропускаем
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || !isTempName(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if now.Sub(info.ModTime()) < ttl {
			return nil
		}

		if err := os.Remove(path); err == nil {
			removed++
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return removed, nil
	}

	return removed, err
}

func isTempName(name string) bool {
	return strings.HasPrefix(name, tempPrefix) && strings.HasSuffix(name, tempSuffix)
}
