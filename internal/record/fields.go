// Package record lays out one bulk transaction as a flat set of named
// fields. The stores share this layout; the aggregate never sees it.
package record

import (
	"strings"

	"bulkconnector/internal/core"
)

const (
	Root                     = "bulkTransaction"
	IndividualTransferPrefix = "individualItem_"
	BulkBatchPrefix          = "bulkBatch_"
)

func IndividualTransfer(id string) string {
	return IndividualTransferPrefix + id
}

func BulkBatch(id string) string {
	return BulkBatchPrefix + id
}

func Counter(counter core.Counter) string {
	return string(counter)
}

// IDs returns the ids of the fields that carry prefix, in the order given.
func IDs(fields []string, prefix string) []string {
	ids := []string{}
	for _, field := range fields {
		if id, ok := strings.CutPrefix(field, prefix); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
