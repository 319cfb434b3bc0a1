package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
)

// RollbarLogger reports to rollbar and mirrors every entry on a std logger.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

// ReportingEnabled tells whether entries should reach rollbar under `conf`.
// The rollbar client is global: call Enable once, after every logger is built.
func ReportingEnabled(conf *core.Config) bool {
	return conf.RollbarToken != "" && !conf.Debug && !conf.TestMode
}

func (l *RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}, core.Identity
func (l *RollbarLogger) prepare(msg string, args []interface{}) (rbArgs, stdArgs []interface{}) {
	var idSet bool
	rbArgs = make([]interface{}, 0, len(args)+1)
	rbArgs = append(rbArgs, msg)
	stdArgs = make([]interface{}, 0, len(args))
	for _, arg := range args {
		if id, ok := arg.(core.Identity); ok {
			if !idSet { // only set one person
				rollbar.SetPerson(id.ID, id.Username, id.Email)
				idSet = true
			}
			continue
		}
		rbArgs = append(rbArgs, arg)
		stdArgs = append(stdArgs, arg)
	}
	if !idSet {
		rollbar.ClearPerson()
	}
	return rbArgs, stdArgs
}

func (l *RollbarLogger) print(level, msg string, args []interface{}) {
	_ = l.std.Output(3, level+": "+msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	rbArgs, stdArgs := l.prepare(msg, args)
	rollbar.Debug(rbArgs...)
	l.print("DEBUG", msg, stdArgs)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	rbArgs, stdArgs := l.prepare(msg, args)
	rollbar.Info(rbArgs...)
	l.print("INFO", msg, stdArgs)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	rbArgs, stdArgs := l.prepare(msg, args)
	rollbar.Warning(rbArgs...)
	l.print("WARN", msg, stdArgs)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	rbArgs, stdArgs := l.prepare(msg, args)
	rollbar.Error(rbArgs...)
	l.print("ERROR", msg, stdArgs)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	rbArgs, stdArgs := l.prepare(msg, args)
	rollbar.Critical(rbArgs...)
	l.print("FATAL", msg, stdArgs)
	rollbar.Close()
	l.std.Fatal(msg)
}
