package logger_adapter

import (
	"errors"

	"listing-service/internal/core/port"
)

var errNoSinks = errors.New("fanout logger: no sinks configured")

// FanoutLogger дублирует записи во все приемники: stdout и Fluent Bit.
type FanoutLogger struct {
	sinks []port.LoggerPort
}

// NewFanoutLogger пропускает nil-приемники. Единственный приемник возвращается как есть.
func NewFanoutLogger(sinks ...port.LoggerPort) (port.LoggerPort, error) {
	active := make([]port.LoggerPort, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}

	switch len(active) {
	case 0:
		return nil, errNoSinks
	case 1:
		return active[0], nil
	}
	return &FanoutLogger{sinks: active}, nil
}

// emit отдает каждому приемнику свою копию полей
func (f *FanoutLogger) emit(fields port.Fields, write func(port.LoggerPort, port.Fields)) {
	for _, s := range f.sinks {
		write(s, copyFields(fields))
	}
}

func (f *FanoutLogger) Info(msg string, fields port.Fields) {
	f.emit(fields, func(s port.LoggerPort, fl port.Fields) { s.Info(msg, fl) })
}

func (f *FanoutLogger) Warn(msg string, fields port.Fields) {
	f.emit(fields, func(s port.LoggerPort, fl port.Fields) { s.Warn(msg, fl) })
}

func (f *FanoutLogger) Error(msg string, err error, fields port.Fields) {
	f.emit(fields, func(s port.LoggerPort, fl port.Fields) { s.Error(msg, err, fl) })
}

func (f *FanoutLogger) Debug(msg string, fields port.Fields) {
	f.emit(fields, func(s port.LoggerPort, fl port.Fields) { s.Debug(msg, fl) })
}

func (f *FanoutLogger) WithFields(fields port.Fields) port.LoggerPort {
	child := &FanoutLogger{sinks: make([]port.LoggerPort, len(f.sinks))}
	for i, s := range f.sinks {
		child.sinks[i] = s.WithFields(copyFields(fields))
	}
	return child
}

func copyFields(fields port.Fields) port.Fields {
	if fields == nil {
		return nil
	}
	out := make(port.Fields, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
