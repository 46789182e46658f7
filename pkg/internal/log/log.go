/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level defines a log level for a module.
type Level int

// Log levels.
const (
	FATAL Level = iota
	PANIC
	ERROR
	WARNING
	INFO
	DEBUG
)

const defaultLevel = INFO

var levelNames = map[Level]string{
	FATAL:   "FATAL",
	PANIC:   "PANIC",
	ERROR:   "ERROR",
	WARNING: "WARNING",
	INFO:    "INFO",
	DEBUG:   "DEBUG",
}

// String returns the name of the log level.
func (l Level) String() string {
	name, ok := levelNames[l]
	if !ok {
		return fmt.Sprintf("Level(%d)", l)
	}

	return name
}

// ParseLevel parses a log level from the given string.
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(level) {
	case "FATAL":
		return FATAL, nil
	case "PANIC":
		return PANIC, nil
	case "ERROR":
		return ERROR, nil
	case "WARNING", "WARN":
		return WARNING, nil
	case "INFO":
		return INFO, nil
	case "DEBUG":
		return DEBUG, nil
	default:
		return ERROR, fmt.Errorf("invalid log level '%s'", level)
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARNING:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case PANIC:
		return zapcore.PanicLevel
	default:
		return zapcore.FatalLevel
	}
}

type moduleLevels struct {
	mutex        sync.RWMutex
	levels       map[string]Level
	defaultLevel Level
}

var levels = &moduleLevels{levels: make(map[string]Level), defaultLevel: defaultLevel}

// SetLevel sets the log level for the given module.
func SetLevel(module string, level Level) {
	levels.mutex.Lock()
	defer levels.mutex.Unlock()

	levels.levels[module] = level
}

// SetDefaultLevel sets the default log level.
func SetDefaultLevel(level Level) {
	levels.mutex.Lock()
	defer levels.mutex.Unlock()

	levels.defaultLevel = level
}

// GetLevel returns the log level for the given module. If no level was set for
// the module then the default level is returned.
func GetLevel(module string) Level {
	levels.mutex.RLock()
	defer levels.mutex.RUnlock()

	level, ok := levels.levels[module]
	if !ok {
		return levels.defaultLevel
	}

	return level
}

// SetSpec sets log levels for individual modules as well as the default log level,
// using the format "module1=level1:module2=level2:defaultLevel".
func SetSpec(spec string) error {
	moduleLevelPairs, defaultLogLevel, err := parseSpec(spec)
	if err != nil {
		return err
	}

	if defaultLogLevel > -1 {
		SetDefaultLevel(defaultLogLevel)
	}

	for _, pair := range moduleLevelPairs {
		SetLevel(pair.module, pair.level)
	}

	return nil
}

// GetSpec returns the log spec which specifies the log level of each individual
// module as well as the default log level.
func GetSpec() string {
	levels.mutex.RLock()
	defer levels.mutex.RUnlock()

	var moduleSpecs []string

	for module, level := range levels.levels {
		moduleSpecs = append(moduleSpecs, fmt.Sprintf("%s=%s", module, level))
	}

	sort.Strings(moduleSpecs)

	return strings.Join(append(moduleSpecs, levels.defaultLevel.String()), ":")
}

type moduleLevelPair struct {
	module string
	level  Level
}

func parseSpec(spec string) ([]moduleLevelPair, Level, error) {
	var pairs []moduleLevelPair

	defaultLogLevel := Level(-1)

	for _, field := range strings.Split(spec, ":") {
		split := strings.Split(field, "=")

		switch len(split) {
		case 1:
			level, err := ParseLevel(split[0])
			if err != nil {
				return nil, -1, fmt.Errorf("parse default log level: %w", err)
			}

			defaultLogLevel = level
		case 2: //nolint:gomnd
			level, err := ParseLevel(split[1])
			if err != nil {
				return nil, -1, fmt.Errorf("parse log level for module '%s': %w", split[0], err)
			}

			pairs = append(pairs, moduleLevelPair{module: split[0], level: level})
		default:
			return nil, -1, fmt.Errorf("invalid log spec field '%s'", field)
		}
	}

	return pairs, defaultLogLevel, nil
}

// Encoding defines the log encoding.
type Encoding string

// Log encodings.
const (
	Console Encoding = "console"
	JSON    Encoding = "json"
)

type options struct {
	writer   io.Writer
	encoding Encoding
}

// Option is a logger option.
type Option func(*options)

// WithStdOut sets the writer for standard output.
func WithStdOut(writer io.Writer) Option {
	return func(o *options) {
		o.writer = writer
	}
}

// WithEncoding sets the log encoding.
func WithEncoding(encoding Encoding) Option {
	return func(o *options) {
		o.encoding = encoding
	}
}

// Log is a module-scoped logger.
type Log struct {
	module string
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

// New returns a logger for the given module. The logger's level may be changed
// at any time with SetLevel, SetDefaultLevel or SetSpec.
func New(module string, opts ...Option) *Log {
	o := &options{writer: os.Stdout, encoding: Console}

	for _, opt := range opts {
		opt(o)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if o.encoding == JSON {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.Lock(zapcore.AddSync(o.writer)),
		zap.LevelEnablerFunc(func(level zapcore.Level) bool {
			return level >= GetLevel(module).zapLevel()
		}),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Named(module)

	return &Log{module: module, logger: logger, sugar: logger.Sugar()}
}

// Debugf logs a formatted message at debug level.
func (l *Log) Debugf(msg string, args ...interface{}) {
	l.sugar.Debugf(msg, args...)
}

// Infof logs a formatted message at info level.
func (l *Log) Infof(msg string, args ...interface{}) {
	l.sugar.Infof(msg, args...)
}

// Warnf logs a formatted message at warn level.
func (l *Log) Warnf(msg string, args ...interface{}) {
	l.sugar.Warnf(msg, args...)
}

// Errorf logs a formatted message at error level.
func (l *Log) Errorf(msg string, args ...interface{}) {
	l.sugar.Errorf(msg, args...)
}

// Panicf logs a formatted message at panic level and then panics.
func (l *Log) Panicf(msg string, args ...interface{}) {
	l.sugar.Panicf(msg, args...)
}

// Debug logs a message with fields at debug level.
func (l *Log) Debug(msg string, fields ...zap.Field) {
	l.logger.Debug(msg, fields...)
}

// Info logs a message with fields at info level.
func (l *Log) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

// Warn logs a message with fields at warn level.
func (l *Log) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

// Error logs a message with fields at error level.
func (l *Log) Error(msg string, fields ...zap.Field) {
	l.logger.Error(msg, fields...)
}

// IsEnabled returns true if the given log level is enabled for this module.
func (l *Log) IsEnabled(level Level) bool {
	return level <= GetLevel(l.module)
}
