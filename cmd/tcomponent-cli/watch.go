package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// watch calls onChange after every relevant event under root until ctx is
// done.
func watch(ctx context.Context, root string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("watching %s", root)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&relevantOps == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if err := watchCreated(watcher, event.Name); err != nil {
					log.Printf("watch: %v", err)
				}
			}
			log.Printf("%s changed", filepath.ToSlash(event.Name))
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}

// watchCreated adds name to watcher when it is a directory.
func watchCreated(watcher *fsnotify.Watcher, name string) error {
	info, err := os.Stat(name)
	if err != nil || !info.IsDir() {
		return nil
	}
	return watcher.Add(name)
}
