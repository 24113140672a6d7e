package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerSinkNonInteractive(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	var buf bytes.Buffer
	sink := NewSpinnerSink(&buf, false)

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "deploying", Message: "Deploying SafeCoin to hardhat...", Spinner: true})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "confirmed", Message: "SafeCoin deployed at 0x1"})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "verified"})
	sink.Info("using dev account")
	sink.Error("boom")

	assert.Equal(t,
		"🚀 Deploying SafeCoin to hardhat...\n"+
			"✅ SafeCoin deployed at 0x1\n"+
			"ℹ️  using dev account\n"+
			"❌ boom\n",
		buf.String())
}

func TestSpinnerSinkInteractive(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	var buf bytes.Buffer
	sink := NewSpinnerSink(&buf, true)

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "deploying", Message: "Deploying...", Spinner: true})
	require.NotNil(t, sink.spinner)

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "failed", Message: "reverted"})
	assert.False(t, sink.spinner.Active())
	assert.Contains(t, buf.String(), "❌ reverted")

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "confirmed", Message: "SafeCoin deployed at 0x1"})
	assert.Contains(t, buf.String(), "✅ SafeCoin deployed at 0x1 (")
}
