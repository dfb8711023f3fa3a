// Package peerlog adapts a zap.Logger to bgp.Notify.
package peerlog

import (
	"go.uber.org/zap"

	"github.com/nullrouted/peerd/internal/bgp"
)

// Logger is a zap-backed bgp.Notify.
type Logger struct {
	log *zap.Logger
}

// New wraps log. A nil log is replaced with zap.NewNop().
func New(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log}
}

func messageTypeName(t uint8) string {
	switch t {
	case bgp.MsgTypeOpen:
		return "OPEN"
	case bgp.MsgTypeUpdate:
		return "UPDATE"
	case bgp.MsgTypeKeepalive:
		return "KEEPALIVE"
	default:
		return "UNKNOWN"
	}
}

func (l *Logger) Transition(peer, from, to string) {
	l.log.Info("session state transition",
		zap.String("peer", peer),
		zap.String("from", from),
		zap.String("to", to),
	)
}

func (l *Logger) Sent(peer string, msgType uint8) {
	l.log.Debug("sent message",
		zap.String("peer", peer),
		zap.String("type", messageTypeName(msgType)),
	)
}

func (l *Logger) Received(peer string, msgType uint8) {
	l.log.Debug("received message",
		zap.String("peer", peer),
		zap.String("type", messageTypeName(msgType)),
	)
}

func (l *Logger) Fatal(peer string, err error) {
	l.log.Error("session ended",
		zap.String("peer", peer),
		zap.Error(err),
	)
}

var _ bgp.Notify = (*Logger)(nil)
