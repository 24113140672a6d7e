package cli

import (
	"testing"

	"github.com/safecoin-labs/safecoin-deploy/internal/cli/render"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	domainconfig "github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeployOptions(t *testing.T) {
	network := &domainconfig.Network{Name: "eth_sepolia", ChainID: 11155111}
	spec := domainconfig.DeploymentSpec{
		Libraries: map[string]string{"MathLib": "0x0000000000000000000000000000000000000001"},
		GasLimit:  500000,
	}

	t.Run("configured values", func(t *testing.T) {
		opts, err := deployOptions(spec, network, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, network, opts.Network)
		assert.Equal(t, uint64(500000), opts.GasLimit)
		assert.Equal(t, "0x0000000000000000000000000000000000000001", opts.Libraries["MathLib"])
	})

	t.Run("flags win", func(t *testing.T) {
		opts, err := deployOptions(spec, network, []string{"MathLib=0x0000000000000000000000000000000000000002"}, 300000)
		require.NoError(t, err)
		assert.Equal(t, uint64(300000), opts.GasLimit)
		assert.Equal(t, "0x0000000000000000000000000000000000000002", opts.Libraries["MathLib"])
		// the configured map is left alone
		assert.Equal(t, "0x0000000000000000000000000000000000000001", spec.Libraries["MathLib"])
	})

	t.Run("malformed flag", func(t *testing.T) {
		_, err := deployOptions(spec, network, []string{"MathLib"}, 0)
		assert.Error(t, err)
	})

	t.Run("bad address", func(t *testing.T) {
		_, err := deployOptions(spec, network, []string{"MathLib=0x12"}, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})
}

func TestOutputFormat(t *testing.T) {
	f, err := outputFormat(false, false)
	require.NoError(t, err)
	assert.Equal(t, render.FormatTable, f)

	f, err = outputFormat(true, false)
	require.NoError(t, err)
	assert.Equal(t, render.FormatJSON, f)

	f, err = outputFormat(false, true)
	require.NoError(t, err)
	assert.Equal(t, render.FormatYAML, f)

	_, err = outputFormat(true, true)
	assert.Error(t, err)
}

func TestContractArg(t *testing.T) {
	assert.Equal(t, "SafeCoin", contractArg(nil))
	assert.Equal(t, "Vault", contractArg([]string{"Vault"}))
}

func TestRootCommands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"deploy", "verify", "list", "show", "networks", "token", "version"})

	deploy, _, err := root.Find([]string{"deploy"})
	require.NoError(t, err)
	assert.NotNil(t, deploy.Flags().Lookup("yes"))
	assert.NotNil(t, deploy.Flags().Lookup("lib"))
}
