package cmd

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

// cliFormatter prints log entries the way the rest of the command
// output looks: progress as ":: message", warnings and errors tagged.
type cliFormatter struct {
	styles styles
}

func (f *cliFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	switch e.Level {
	case logrus.WarnLevel:
		b.WriteString("Warning: ")
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		b.WriteString(f.styles.errorPrefix.Render("[Error]"))
		b.WriteByte(' ')
	default:
		b.WriteString(":: ")
	}
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// newLogger returns the command logger. Warnings are always shown;
// verbose adds the debug trace.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&cliFormatter{styles: newStyles(w)})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}
