package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case Debug:
		return zerolog.DebugLevel
	case Warn:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Logger es la fachada que usan services y middlewares.
// Los campos van como map para no acoplar el dominio a zerolog.
type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// ZeroLogger implementa Logger sobre zerolog.
type ZeroLogger struct {
	zl zerolog.Logger
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Output por defecto es os.Stdout. Útil para tests.
	Output io.Writer
}

func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	if opts.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: "2006-01-02T15:04:05.000Z07:00"}
	}

	ctx := zerolog.New(out).Level(opts.Level.zerolog()).With().Timestamp()
	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}

	return &ZeroLogger{zl: ctx.Logger()}
}

// Nop descarta todo. Lo usan los tests y los services sin logger inyectado.
func Nop() Logger {
	return &ZeroLogger{zl: zerolog.Nop()}
}

func (l *ZeroLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZeroLogger{zl: l.zl.With().Fields(clean(fields)).Logger()}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]any) { l.log(l.zl.Debug(), msg, fields) }
func (l *ZeroLogger) Info(msg string, fields map[string]any)  { l.log(l.zl.Info(), msg, fields) }
func (l *ZeroLogger) Warn(msg string, fields map[string]any)  { l.log(l.zl.Warn(), msg, fields) }
func (l *ZeroLogger) Error(msg string, fields map[string]any) { l.log(l.zl.Error(), msg, fields) }

func (l *ZeroLogger) log(evt *zerolog.Event, msg string, fields map[string]any) {
	// evt es nil cuando el nivel está filtrado.
	if evt == nil {
		return
	}
	if len(fields) > 0 {
		evt = evt.Fields(clean(fields))
	}
	evt.Msg(msg)
}

func clean(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err, ok := v.(error); ok {
			out[k] = err.Error()
			continue
		}
		out[k] = v
	}
	return out
}
