package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemcore/internal/config"
	"github.com/lox/holdemcore/internal/table"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, evaluate(&buf, "As Ks Qs Js Ts 2c 3d"))
	assert.Contains(t, buf.String(), "Royal Flush")

	buf.Reset()
	require.NoError(t, evaluate(&buf, "AhAd 7c 7s 2d 9h Kc"))
	assert.Contains(t, buf.String(), "Two Pair, Aces and Sevens")
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Error(t, evaluate(&buf, "As Ks Qs"))
	assert.Error(t, evaluate(&buf, "As As Qs Js Ts 2c 3d"))
	assert.Error(t, evaluate(&buf, "Zz Ks Qs Js Ts 2c 3d"))
	assert.Empty(t, buf.String())
}

func TestSimulateTableConfigs(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Tables = append(cfg.Tables, config.TableConfig{Name: "high", Seats: 2, SmallBlind: 50, BigBlind: 100, StartingStack: 5000})

	cmd := &SimulateCmd{Tables: 2}
	tables, err := cmd.tableConfigs(cfg)
	require.NoError(t, err)
	require.Len(t, tables, 4)
	assert.Equal(t, "main-1", tables[0].Name)
	assert.Equal(t, "high-2", tables[3].Name)
	assert.Equal(t, 100, tables[3].BigBlind)

	cmd = &SimulateCmd{Table: "high"}
	tables, err = cmd.tableConfigs(cfg)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "high", tables[0].Name)

	cmd = &SimulateCmd{Table: "missing"}
	_, err = cmd.tableConfigs(cfg)
	assert.ErrorIs(t, err, table.ErrTableNotFound)
}
