package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, newLogger("debug", false).GetLevel())
	assert.Equal(t, logrus.WarnLevel, newLogger("warn", false).GetLevel())
	assert.Equal(t, logrus.InfoLevel, newLogger("chatty", false).GetLevel())
	assert.Equal(t, logrus.DebugLevel, newLogger("error", true).GetLevel())
}
