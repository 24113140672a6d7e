package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// LinkReference locates a 20-byte library placeholder inside creation bytecode
type LinkReference struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// LinkReferences maps source file -> library name -> placeholder positions
type LinkReferences map[string]map[string][]LinkReference

// Libraries returns the fully qualified "source:Name" of every linked library
func (l LinkReferences) Libraries() []string {
	var libs []string
	for source, names := range l {
		for name := range names {
			libs = append(libs, source+":"+name)
		}
	}
	return libs
}

// Artifact is a compiled contract. Both Foundry (out/) and Hardhat
// (artifacts/) layouts decode into it.
type Artifact struct {
	ContractName    string
	SourceName      string
	ABI             json.RawMessage
	Bytecode        string
	LinkReferences  LinkReferences
	CompilerVersion string
	// Path is the artifact file on disk
	Path string
}

type bytecodeObject struct {
	Object         string         `json:"object"`
	LinkReferences LinkReferences `json:"linkReferences"`
}

type rawArtifact struct {
	ContractName   string          `json:"contractName"`
	SourceName     string          `json:"sourceName"`
	ABI            json.RawMessage `json:"abi"`
	Bytecode       json.RawMessage `json:"bytecode"`
	LinkReferences LinkReferences  `json:"linkReferences"`
	Metadata       *struct {
		Compiler struct {
			Version string `json:"version"`
		} `json:"compiler"`
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

// UnmarshalJSON accepts the Hardhat string bytecode and the Foundry object form
func (a *Artifact) UnmarshalJSON(data []byte) error {
	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.ContractName = raw.ContractName
	a.SourceName = raw.SourceName
	a.ABI = raw.ABI
	a.LinkReferences = raw.LinkReferences

	trimmed := bytes.TrimSpace(raw.Bytecode)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
	case trimmed[0] == '"':
		if err := json.Unmarshal(trimmed, &a.Bytecode); err != nil {
			return fmt.Errorf("invalid bytecode: %w", err)
		}
	default:
		var obj bytecodeObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return fmt.Errorf("invalid bytecode object: %w", err)
		}
		a.Bytecode = obj.Object
		if len(obj.LinkReferences) > 0 {
			a.LinkReferences = obj.LinkReferences
		}
	}

	if raw.Metadata != nil {
		a.CompilerVersion = raw.Metadata.Compiler.Version
		for source, name := range raw.Metadata.Settings.CompilationTarget {
			if a.SourceName == "" {
				a.SourceName = source
			}
			if a.ContractName == "" {
				a.ContractName = name
			}
		}
	}
	return nil
}

// IsDeployable reports whether the artifact carries creation bytecode
func (a *Artifact) IsDeployable() bool {
	code := strings.TrimPrefix(a.Bytecode, "0x")
	return code != ""
}

// FullyQualifiedName returns "source:Name" as used by forge verify-contract
func (a *Artifact) FullyQualifiedName() string {
	if a.SourceName == "" {
		return a.ContractName
	}
	return a.SourceName + ":" + a.ContractName
}
