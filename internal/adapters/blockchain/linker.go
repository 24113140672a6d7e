package blockchain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
)

// placeholderPattern matches solc library placeholders left in creation code
var placeholderPattern = regexp.MustCompile(`__\$[0-9a-fA-F]{34}\$__`)

// LinkBytecode substitutes library addresses into the artifact's creation
// code. Libraries are looked up by "source:Name" first, then by bare name.
// Every missing library is reported together.
func LinkBytecode(artifact *models.Artifact, libraries map[string]string) ([]byte, error) {
	code := strings.TrimPrefix(artifact.Bytecode, "0x")
	if code == "" {
		return nil, &domain.ConfigurationError{
			Contract: artifact.ContractName,
			Reason:   "artifact has no creation bytecode",
			Err:      domain.ErrArtifactNotFound,
		}
	}

	var missing []string
	linked := []byte(code)

	sources := make([]string, 0, len(artifact.LinkReferences))
	for source := range artifact.LinkReferences {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		for name, refs := range artifact.LinkReferences[source] {
			addr, ok := libraries[source+":"+name]
			if !ok {
				addr, ok = libraries[name]
			}
			if !ok {
				missing = append(missing, name)
				continue
			}
			if !common.IsHexAddress(addr) {
				return nil, &domain.ConfigurationError{
					Contract: artifact.ContractName,
					Reason:   fmt.Sprintf("library %s address %q", name, addr),
					Err:      domain.ErrInvalidAddress,
				}
			}

			hexAddr := strings.ToLower(strings.TrimPrefix(common.HexToAddress(addr).Hex(), "0x"))
			for _, ref := range refs {
				start, end := ref.Start*2, (ref.Start+ref.Length)*2
				if ref.Start < 0 || ref.Length != common.AddressLength || end > len(linked) {
					return nil, &domain.ConfigurationError{
						Contract: artifact.ContractName,
						Reason:   fmt.Sprintf("link reference for %s out of range (start %d, length %d)", name, ref.Start, ref.Length),
					}
				}
				copy(linked[start:end], hexAddr)
			}
		}
	}

	if len(missing) > 0 {
		return nil, domain.NewUnresolvedLibrariesError(artifact.ContractName, missing)
	}

	// Placeholders without link references mean the artifact cannot be deployed as-is
	if placeholderPattern.Match(linked) {
		return nil, domain.NewUnresolvedLibrariesError(artifact.ContractName, []string{"<unknown placeholder>"})
	}

	bytecode := common.FromHex(string(linked))
	if len(bytecode)*2 != len(linked) {
		return nil, &domain.ConfigurationError{
			Contract: artifact.ContractName,
			Reason:   "creation bytecode is not valid hex",
		}
	}
	return bytecode, nil
}
