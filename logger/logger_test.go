package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"budgetbook/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Production(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Profile: config.ProfileProduction, Log: config.LogConfig{Level: "info"}}
	log := NewWithWriter(cfg, &buf)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	log.WithField("route", "/budgets").Info("加载预算失败")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/budgets", entry["route"])
	assert.Equal(t, "加载预算失败", entry["msg"])
}

func TestNewWithWriter_DevelopmentLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Profile: config.ProfileDevelopment, Log: config.LogConfig{Level: "debug"}}
	log := NewWithWriter(cfg, &buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.Debug("hello")
	assert.Contains(t, buf.String(), "hello")

	// 无效级别回退到 info
	cfg.Log.Level = "loud"
	assert.Equal(t, logrus.InfoLevel, NewWithWriter(cfg, &buf).GetLevel())
}
