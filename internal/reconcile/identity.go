package reconcile

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// SyntheticIDPrefix tags identifiers this pipeline minted itself, as
// opposed to ones that arrived from a source system.
const SyntheticIDPrefix = "INT_"

// identitySeparator joins the hashed fields. Frozen: changing it (or the
// field order in SyntheticOrderID) changes every synthesized identifier
// across runs, which is a breaking change for the warehouse.
const identitySeparator = "|"

// SyntheticOrderID derives a deterministic order identifier for records
// that arrive without one. The digest is content addressing, not
// security: the same seven-field tuple must always yield the same id, so
// no clock or random state may enter the input. Field order v1:
// customer, raw date text, style, sku, quantity, rate, gross amount;
// missing fields hash as the empty string.
func SyntheticOrderID(customer, rawDate, style, sku, quantity, rate, grossAmount string) string {
	joined := strings.Join([]string{customer, rawDate, style, sku, quantity, rate, grossAmount}, identitySeparator)
	sum := md5.Sum([]byte(joined))
	return SyntheticIDPrefix + hex.EncodeToString(sum[:])
}
