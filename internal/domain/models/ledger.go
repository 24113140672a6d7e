package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// LedgerTimeLayout renders YYYY/MM/DD HH:MM:SS with zero padding.
const LedgerTimeLayout = "2006/01/02 15:04:05"

// LedgerEntry records one successful deployment
type LedgerEntry struct {
	Address  string   `json:"address"`
	Deployer string   `json:"deployer"`
	Datetime string   `json:"datetime"`
	Args     []string `json:"args"`
}

// UnmarshalJSON reads args of any JSON type. Ledgers written by the Hardhat
// scripts store numeric constructor args as numbers; those keep their literal
// text so 100000000 reads back as "100000000".
func (e *LedgerEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Address  string            `json:"address"`
		Deployer string            `json:"deployer"`
		Datetime string            `json:"datetime"`
		Args     []json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Address = raw.Address
	e.Deployer = raw.Deployer
	e.Datetime = raw.Datetime
	e.Args = nil
	if raw.Args != nil {
		e.Args = make([]string, 0, len(raw.Args))
	}
	for i, arg := range raw.Args {
		s, err := ledgerArgString(arg)
		if err != nil {
			return fmt.Errorf("invalid arg %d: %w", i, err)
		}
		e.Args = append(e.Args, s)
	}
	return nil
}

func ledgerArgString(arg json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(arg)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return "", nil
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case trimmed[0] == '[' || trimmed[0] == '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		// numbers and booleans
		return string(trimmed), nil
	}
}

// Ledger maps contract name -> network name -> most recent deployment
type Ledger map[string]map[string]LedgerEntry

// FormatLedgerTime formats t in local time for the ledger datetime field
func FormatLedgerTime(t time.Time) string {
	return t.Local().Format(LedgerTimeLayout)
}

// Get returns the entry for a (contract, network) pair
func (l Ledger) Get(contract, network string) (LedgerEntry, bool) {
	networks, ok := l[contract]
	if !ok {
		return LedgerEntry{}, false
	}
	entry, ok := networks[network]
	return entry, ok
}

// Set inserts or overwrites the entry for a (contract, network) pair and
// returns the entry it replaced, if any.
func (l Ledger) Set(contract, network string, entry LedgerEntry) (LedgerEntry, bool) {
	if l[contract] == nil {
		l[contract] = make(map[string]LedgerEntry)
	}
	prev, existed := l[contract][network]
	l[contract][network] = entry
	return prev, existed
}

// LedgerRecord is a flattened ledger row
type LedgerRecord struct {
	Contract string
	Network  string
	Entry    LedgerEntry
}

// Records flattens the ledger, sorted by contract then network
func (l Ledger) Records() []LedgerRecord {
	var records []LedgerRecord
	for contract, networks := range l {
		for network, entry := range networks {
			records = append(records, LedgerRecord{Contract: contract, Network: network, Entry: entry})
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Contract != records[j].Contract {
			return records[i].Contract < records[j].Contract
		}
		return records[i].Network < records[j].Network
	})
	return records
}
