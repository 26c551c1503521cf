package logger

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"arber/config"
)

const MaxLogSize = 50 * 1024 * 1024 // 50 MB

var (
	ArbLogger, JitoLogger, GlobalLogger *slog.Logger
	consoleEnabled                      = true

	globalRW, arbRW, jitoRW *rotatingWriter
)

// Thread-safe writer that rotates files when they exceed max size.
type rotatingWriter struct {
	mu      sync.Mutex
	file    *os.File
	dir     string
	prefix  string // e.g. "arber_20250925_101122_global"
	ext     string // ".log"
	size    int64
	maxSize int64
}

func newRotatingWriter(dir, prefix string, maxSize int64) (*rotatingWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	rw := &rotatingWriter{
		dir:     dir,
		prefix:  prefix,
		ext:     ".log",
		maxSize: maxSize,
	}
	if err := rw.rotateNew(); err != nil {
		return nil, err
	}
	return rw, nil
}

func (w *rotatingWriter) currentName() string {
	return filepath.Join(w.dir, w.prefix+w.ext)
}

func (w *rotatingWriter) rotateNew() error {
	if w.file != nil {
		_ = w.file.Close()
	}

	f, err := os.OpenFile(w.currentName(), os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0o666)
	if err != nil {
		return err
	}
	w.file = f
	w.size = 0
	return nil
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size+int64(len(p)) > w.maxSize {
		if err := w.rotateNew(); err != nil {
			return 0, err
		}
	}
	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *rotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

func SetConsoleEnabled(enabled bool) {
	consoleEnabled = enabled
	resetLoggers()
}

// InitLogs opens the per-command log files. Called once from the cobra
// command that is about to run.
func InitLogs(cmdName string) {
	ensureLogDir()

	ts := time.Now().Format("20060102150405")

	var err error
	arbRW, err = newRotatingWriter(config.LogPath, fmt.Sprintf("arber_%s_%s_arb", ts, cmdName), MaxLogSize)
	if err != nil {
		log.Fatal(err)
	}
	jitoRW, err = newRotatingWriter(config.LogPath, fmt.Sprintf("arber_%s_%s_jito", ts, cmdName), MaxLogSize)
	if err != nil {
		log.Fatal(err)
	}

	ArbLogger = slog.New(newHandler(arbRW))
	JitoLogger = slog.New(newHandler(jitoRW))
	resetLoggers()
}

func init() {
	ensureLogDir()
	ts := time.Now().Format("20060102150405")

	var err error
	globalRW, err = newRotatingWriter(config.LogPath, fmt.Sprintf("arber_%s_global", ts), MaxLogSize)
	if err != nil {
		log.Fatal(err)
	}
	GlobalLogger = slog.New(newHandler(globalRW))

	// Until InitLogs runs, route everything to the global file.
	ArbLogger = GlobalLogger
	JitoLogger = GlobalLogger
}

func CloseAll() {
	if globalRW != nil {
		_ = globalRW.Close()
	}
	if arbRW != nil {
		_ = arbRW.Close()
	}
	if jitoRW != nil {
		_ = jitoRW.Close()
	}
}

func ensureLogDir() {
	if err := os.MkdirAll(config.LogPath, 0o755); err != nil {
		log.Fatal(err)
	}
}

func newHandler(fileWriter io.Writer) slog.Handler {
	w := fileWriter
	if consoleEnabled {
		w = io.MultiWriter(os.Stdout, fileWriter)
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: true,
	})
}

func resetLoggers() {
	if globalRW != nil {
		GlobalLogger = slog.New(newHandler(globalRW))
	}
	if arbRW != nil {
		ArbLogger = slog.New(newHandler(arbRW))
	}
	if jitoRW != nil {
		JitoLogger = slog.New(newHandler(jitoRW))
	}
}
