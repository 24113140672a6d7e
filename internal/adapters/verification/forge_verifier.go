package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/safecoin-labs/safecoin-deploy/internal/adapters/blockchain"
	"github.com/safecoin-labs/safecoin-deploy/internal/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
)

const (
	VerifierEtherscan = "etherscan"
	VerifierSourcify  = "sourcify"
)

// CommandRunner executes a command in dir and returns its combined output
type CommandRunner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// ForgeVerifier publishes sources with `forge verify-contract` on Etherscan
// and, when the network enables it, Sourcify
type ForgeVerifier struct {
	projectRoot string
	apiKey      string
	artifacts   usecase.ArtifactRepository
	run         CommandRunner
	log         *slog.Logger
}

// NewForgeVerifier creates a new forge verifier
func NewForgeVerifier(cfg *config.RuntimeConfig, artifacts usecase.ArtifactRepository, log *slog.Logger) *ForgeVerifier {
	return &ForgeVerifier{
		projectRoot: cfg.ProjectRoot,
		apiKey:      cfg.EtherscanAPIKey,
		artifacts:   artifacts,
		run:         execRunner,
		log:         log,
	}
}

// Verify succeeds when at least one verifier accepts the source. When all
// fail the Etherscan error is returned.
func (v *ForgeVerifier) Verify(ctx context.Context, req usecase.VerificationRequest) error {
	commands, err := v.commands(ctx, req)
	if err != nil {
		return err
	}

	var firstErr error
	for _, c := range commands {
		err := v.execute(ctx, c.verifier, c.args)
		if err == nil {
			v.log.Debug("verifier accepted source", slog.String("verifier", c.verifier), slog.String("address", req.Address))
			return nil
		}
		v.log.Debug("verifier rejected source", slog.String("verifier", c.verifier), slog.String("error", err.Error()))
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// DumpCommands returns the forge commands Verify would run, without running them
func (v *ForgeVerifier) DumpCommands(ctx context.Context, req usecase.VerificationRequest) ([]string, error) {
	commands, err := v.commands(ctx, req)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(commands))
	for i, c := range commands {
		out[i] = "forge " + strings.Join(redact(c.args), " ")
	}
	return out, nil
}

type forgeCommand struct {
	verifier string
	args     []string
}

func (v *ForgeVerifier) commands(ctx context.Context, req usecase.VerificationRequest) ([]forgeCommand, error) {
	artifact, err := v.artifacts.GetArtifact(ctx, req.ContractName)
	if err != nil {
		return nil, err
	}

	parsed, err := blockchain.ParseABI(artifact.ABI)
	if err != nil {
		return nil, fmt.Errorf("invalid abi for %s: %w", req.ContractName, err)
	}
	constructorArgs, err := blockchain.EncodeConstructorArgs(parsed, req.ConstructorArgs)
	if err != nil {
		return nil, &domain.VerificationError{
			Kind:    domain.VerificationKindRejected,
			Message: fmt.Sprintf("recorded constructor args do not match the abi: %v", err),
		}
	}

	commands := []forgeCommand{{VerifierEtherscan, v.buildEtherscanVerifyArgs(artifact, req, constructorArgs)}}
	if req.Network.Sourcify {
		commands = append(commands, forgeCommand{VerifierSourcify, v.buildSourcifyVerifyArgs(artifact, req, constructorArgs)})
	}
	return commands, nil
}

func (v *ForgeVerifier) baseArgs(artifact *models.Artifact, req usecase.VerificationRequest, constructorArgs string) []string {
	args := []string{
		"verify-contract",
		req.Address,
		artifact.FullyQualifiedName(),
		"--chain-id", fmt.Sprintf("%d", req.Network.ChainID),
		"--watch",
	}
	if artifact.CompilerVersion != "" {
		args = append(args, "--compiler-version", artifact.CompilerVersion)
	}
	if c := strings.TrimPrefix(constructorArgs, "0x"); c != "" {
		args = append(args, "--constructor-args", c)
	}
	return args
}

func (v *ForgeVerifier) buildEtherscanVerifyArgs(artifact *models.Artifact, req usecase.VerificationRequest, constructorArgs string) []string {
	args := v.baseArgs(artifact, req, constructorArgs)
	if v.apiKey != "" {
		args = append(args, "--etherscan-api-key", v.apiKey)
	}
	return args
}

func (v *ForgeVerifier) buildSourcifyVerifyArgs(artifact *models.Artifact, req usecase.VerificationRequest, constructorArgs string) []string {
	return append(v.baseArgs(artifact, req, constructorArgs), "--verifier", "sourcify")
}

func (v *ForgeVerifier) execute(ctx context.Context, verifier string, args []string) error {
	output, err := v.run(ctx, v.projectRoot, "forge", args...)
	if errors.Is(err, exec.ErrNotFound) {
		return &domain.VerificationError{
			Verifier: verifier,
			Kind:     domain.VerificationKindUnknown,
			Message:  "forge not found in PATH",
		}
	}
	return Classify(verifier, string(output), err)
}

func redact(args []string) []string {
	out := append([]string(nil), args...)
	for i := 0; i+1 < len(out); i++ {
		if out[i] == "--etherscan-api-key" {
			out[i+1] = "***"
		}
	}
	return out
}

var _ usecase.SourceVerifier = (*ForgeVerifier)(nil)
