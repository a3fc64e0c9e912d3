// Package cardano recognises Cardano identifiers in raw search input.
// It only inspects the query; it never contacts a node or the backend.
package cardano

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
	"github.com/custodia-labs/chainsearch/internal/core/ports/driven"
)

// Ensure Classifier implements the interface.
var _ driven.QueryClassifier = (*Classifier)(nil)

const (
	hashHexLen   = 64 // tx and block hashes
	policyHexLen = 56 // minting policy ids
	assetDataLen = 20 // CIP-14 fingerprint payload

	// minAddressLen excludes words and short tokens from address parsing.
	minAddressLen = 20
)

// Classifier guesses the category a query most likely refers to.
type Classifier struct{}

// NewClassifier creates a classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the category of a well-formed identifier.
// Free text returns false.
func (c *Classifier) Classify(query string) (domain.Category, bool) {
	q := strings.TrimSpace(query)
	if q == "" || strings.ContainsAny(q, " \t") {
		return "", false
	}

	lower := strings.ToLower(q)
	switch {
	case strings.HasPrefix(lower, "pool1"):
		if _, err := common.NewPoolIdFromBech32(lower); err == nil {
			return domain.CategoryPool, true
		}
		return "", false

	case strings.HasPrefix(lower, "asset1"):
		if isAssetFingerprint(lower) {
			return domain.CategoryAsset, true
		}
		return "", false

	case isHex(q, hashHexLen):
		return domain.CategoryTransaction, true

	case isHex(q, policyHexLen):
		return domain.CategoryPolicy, true

	case isDigits(q):
		return domain.CategoryBlock, true
	}

	if isAddress(q) {
		return domain.CategoryAddress, true
	}
	return "", false
}

// Hint describes what a query looks like, for display next to the input.
// It returns an empty string for free text.
func (c *Classifier) Hint(query string) string {
	category, ok := c.Classify(query)
	if !ok {
		return ""
	}
	switch category {
	case domain.CategoryPool:
		return "stake pool id"
	case domain.CategoryAsset:
		return "asset fingerprint"
	case domain.CategoryTransaction:
		return "transaction or block hash"
	case domain.CategoryPolicy:
		return "policy id"
	case domain.CategoryBlock:
		return "block height or epoch number"
	case domain.CategoryAddress:
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(query)), "stake") {
			return "stake address"
		}
		return "payment address"
	default:
		return ""
	}
}

// isAddress reports whether s parses as a Shelley, stake or Byron address.
// The ledger parser indexes into the decoded bytes unchecked, so a
// malformed base58 string can panic; that is treated as "not an address".
func isAddress(s string) (ok bool) {
	if len(s) < minAddressLen {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_, err := common.NewAddress(s)
	return err == nil
}

func isAssetFingerprint(s string) bool {
	hrp, data, err := bech32.DecodeNoLimit(s)
	if err != nil || hrp != "asset" {
		return false
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	return err == nil && len(decoded) == assetDataLen
}

func isHex(s string, length int) bool {
	if len(s) != length {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func isDigits(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}
