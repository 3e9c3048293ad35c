package block

import (
	"fmt"

	"github.com/robert-malhotra/go-asd/internal/binary"
)

// AuditLog is the ordered record of operator actions embedded in revision 8
// files. Each entry is a vendor-formatted text record carrying its own
// timestamp; entries are kept verbatim in file order.
type AuditLog struct {
	Entries []string
}

// ReadAuditLog decodes the audit log block.
func ReadAuditLog(r *binary.Reader, v Version) (*AuditLog, error) {
	if v < V8 {
		return nil, fmt.Errorf("audit: block not defined before revision 8")
	}

	count, err := r.ReadInt32()
	if err != nil {
		return nil, fmt.Errorf("audit.count: %w", err)
	}
	// Each entry carries at least its two-byte length prefix, so a count
	// the remaining bytes cannot satisfy is malformed. Checking before the
	// allocation keeps a corrupt count from sizing the slice.
	if count < 0 || int(count) > r.Remaining()/2 {
		return nil, &FormatError{Reason: fmt.Sprintf("audit event count %d not satisfiable by %d remaining bytes", count, r.Remaining())}
	}

	log := &AuditLog{Entries: make([]string, 0, count)}
	for i := 0; i < int(count); i++ {
		entry, err := r.ReadPrefixedString()
		if err != nil {
			return nil, fmt.Errorf("audit.entry[%d]: %w", i, err)
		}
		log.Entries = append(log.Entries, entry)
	}
	return log, nil
}
