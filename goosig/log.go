package goosig

import "go.uber.org/zap"

// logger is the package-wide structured logger, used at the boundary
// operations (Init, Challenge, Sign, Verify) only — never inside the
// comb/wNAF hot loops — per SPEC_FULL.md's ambient-stack section.
var logger = zap.NewNop().Sugar()

// SetLogger replaces the package logger, letting a host application route
// goosig's boundary-operation logs into its own zap instance.
func SetLogger(l *zap.Logger) {
	logger = l.Sugar()
}
