package helpers

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
	Print(v ...any)
}

type _defaultLogger struct {
}

func (l *_defaultLogger) Println(v ...any) {
	log.Println(v...)
}
func (l *_defaultLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}
func (l *_defaultLogger) Print(v ...any) {
	log.Print(v...)
}

var DefaultLogger = _defaultLogger{}

type _silentLogger struct {
}

func (l *_silentLogger) Println(v ...any) {
}
func (l *_silentLogger) Printf(format string, v ...any) {
}
func (l *_silentLogger) Print(v ...any) {
}

var SilentLogger = _silentLogger{}

type _funcLogger struct {
	f func(string)
}

func FuncLogger(f func(string)) Logger {
	return &_funcLogger{f}
}

func (l *_funcLogger) Println(v ...any) {
	l.f(fmt.Sprintln(v...))
}
func (l *_funcLogger) Printf(format string, v ...any) {
	l.f(fmt.Sprintf(format, v...))
}
func (l *_funcLogger) Print(v ...any) {
	l.f(fmt.Sprint(v...))
}

// ZerologLogger forwards Logger calls to a zerolog logger at a fixed level.
type ZerologLogger struct {
	logger zerolog.Logger
	level  zerolog.Level
}

var _ Logger = (*ZerologLogger)(nil)

func NewZerologLogger(logger zerolog.Logger, level zerolog.Level) *ZerologLogger {
	return &ZerologLogger{logger: logger, level: level}
}

func (l *ZerologLogger) Println(v ...any) {
	l.logger.WithLevel(l.level).Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
func (l *ZerologLogger) Printf(format string, v ...any) {
	l.logger.WithLevel(l.level).Msg(fmt.Sprintf(format, v...))
}
func (l *ZerologLogger) Print(v ...any) {
	l.logger.WithLevel(l.level).Msg(fmt.Sprint(v...))
}

// NewConsoleLogger writes human readable logs to stderr at the level named by
// LOG_LEVEL, info by default.
func NewConsoleLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
}
