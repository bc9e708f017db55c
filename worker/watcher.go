package worker

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/anyswap/solana-txcore/cmd/utils"
	"github.com/fsnotify/fsnotify"
)

// StartSignWatcher processes the pending files already in dir, then watches
// dir until utils.CleanupChan is closed
func (w *SignWorker) StartSignWatcher(dir string) error {
	watch, err := fsnotify.NewWatcher()
	if err != nil {
		logWorkerError(signJob, "fsnotify.NewWatcher failed", err)
		return err
	}
	if err = watch.Add(dir); err != nil {
		_ = watch.Close()
		logWorkerError(signJob, "watch.Add sign dir failed", err, "dir", dir)
		return err
	}
	w.processExisting(dir)

	utils.TopWaitGroup.Add(1)
	go func() {
		defer utils.TopWaitGroup.Done()
		w.runWatcher(watch, utils.CleanupChan)
	}()
	return nil
}

func (w *SignWorker) runWatcher(watch *fsnotify.Watcher, stop <-chan struct{}) {
	logWorker(signJob, "start fsnotify watch")
	defer func() {
		logWorker(signJob, "stop fsnotify watch")
		_ = watch.Close()
	}()

	ops := []fsnotify.Op{
		fsnotify.Create,
		fsnotify.Write,
	}

	for {
		select {
		case <-stop:
			return
		case ev, ok := <-watch.Events:
			if !ok {
				return
			}
			logWorkerTrace(signJob, "fsnotify watch event", "event", ev)
			for _, op := range ops {
				if ev.Op&op == op {
					w.tryProcessFile(ev.Name)
					break
				}
			}
		case werr, ok := <-watch.Errors:
			if !ok {
				return
			}
			logWorkerWarn(signJob, "fsnotify watch error", "err", werr)
		}
	}
}

func (w *SignWorker) processExisting(dir string) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		logWorkerError(signJob, "read sign dir failed", err, "dir", dir)
		return
	}
	for _, file := range files {
		w.tryProcessFile(filepath.Join(dir, file.Name()))
	}
}

func (w *SignWorker) tryProcessFile(fileName string) {
	if !strings.HasSuffix(fileName, w.PendingSuffix) {
		return
	}
	fileStat, _ := os.Stat(fileName)
	// ignore if file is not exist, or is directory, or is empty file
	if fileStat == nil || fileStat.IsDir() || fileStat.Size() == 0 {
		return
	}
	if _, err := w.ProcessFile(fileName); err != nil {
		logWorkerError(signJob, "process pending file failed", err, "file", fileName)
	}
}
