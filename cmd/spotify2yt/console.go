package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"spotify2yt/internal/i18n"
)

// console prints localized progress lines for the user. Diagnostics go to zap.
type console struct {
	out       io.Writer
	localizer *i18n.Localizer
	colorize  bool

	success *color.Color
	warning *color.Color
	failure *color.Color
	info    *color.Color
}

func newConsole(out io.Writer, localizer *i18n.Localizer) *console {
	c := &console{
		out:       out,
		localizer: localizer,
		colorize:  isTerminal(out),
		success:   color.New(color.FgGreen),
		warning:   color.New(color.FgYellow),
		failure:   color.New(color.FgRed, color.Bold),
		info:      color.New(color.FgCyan),
	}
	if !c.colorize {
		for _, col := range []*color.Color{c.success, c.warning, c.failure, c.info} {
			col.DisableColor()
		}
	}
	return c
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *console) T(key string, args ...interface{}) string {
	return c.localizer.T(key, args...)
}

func (c *console) Success(key string, args ...interface{}) {
	_, _ = c.success.Fprintln(c.out, c.T(key, args...))
}

func (c *console) Warn(key string, args ...interface{}) {
	_, _ = c.warning.Fprintln(c.out, c.T(key, args...))
}

func (c *console) Error(key string, args ...interface{}) {
	_, _ = c.failure.Fprintln(c.out, c.T(key, args...))
}

func (c *console) Info(key string, args ...interface{}) {
	_, _ = c.info.Fprintln(c.out, c.T(key, args...))
}

// Println writes an unlocalized line such as a command to copy.
func (c *console) Println(line string) {
	_, _ = fmt.Fprintln(c.out, line)
}

func (c *console) Blank() {
	_, _ = fmt.Fprintln(c.out)
}
