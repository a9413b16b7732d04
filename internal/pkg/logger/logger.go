package logger

import (
	"bufio"
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns the application logger. Lines go to the rotating log file that
// /logs streams, tee'd to stderr. Rotation keeps a single small backup so the
// file stays cheap to read in one pass.
func New(path string) *log.Logger {
	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1, // megabytes
		MaxBackups: 1,
	}
	return log.New(io.MultiWriter(rotating, os.Stderr), "", log.LstdFlags)
}

// CopyCurrent writes the lines currently present in the log file to w. It is a
// single pass over existing content: once no further line is available it
// returns instead of waiting for new writes.
func CopyCurrent(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if _, werr := io.WriteString(w, line); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
