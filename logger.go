/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gosm4

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a logger writing to stderr.
func NewLogger(conf LogConf) (*zap.Logger, error) {
	return NewLoggerTo(conf, os.Stderr)
}

// NewLoggerTo builds a logger for conf that writes to w. Format is one of
// logfmt, json or console.
func NewLoggerTo(conf LogConf, w io.Writer) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(conf.Level))); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", conf.Level)
	}

	encoderConf := zap.NewProductionEncoderConfig()
	encoderConf.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(conf.Format) {
	case "", "logfmt":
		encoder = zaplogfmt.NewEncoder(encoderConf)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConf)
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConf)
	default:
		return nil, errors.Errorf("unsupported log format %q", conf.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core).Named("gosm4"), nil
}
