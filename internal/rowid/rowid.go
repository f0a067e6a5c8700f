// Package rowid derives stable row identities for records the backend
// returned without a server id. Synthetic ids are minted once per logical
// record and cached for the lifetime of a list session, so grid selection
// stays stable across re-renders.
package rowid

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/balaji-finance/backoffice/internal/person"
	"github.com/zarlcorp/core/pkg/zcrypto"
)

// Resolver caches synthetic ids per composite key. One resolver lives as
// long as one list session; it is not safe for concurrent use, which the
// single-threaded UI never needs.
type Resolver struct {
	synthetic map[string]person.ID
}

// New creates an empty resolver.
func New() *Resolver {
	return &Resolver{synthetic: make(map[string]person.ID)}
}

// Resolve returns the record's server id when present, otherwise a synthetic
// id derived from (firstname, mobile, oldid). The same composite always
// yields the same synthetic id within this resolver's lifetime. Distinct
// records sharing a composite collapse onto one id; that degenerate case is
// accepted, not defended against.
func (r *Resolver) Resolve(rec person.Record) person.ID {
	if !rec.ID.IsZero() {
		return rec.ID
	}

	key := rec.FirstName + "|" + rec.Mobile + "|" + rec.OldID
	if id, ok := r.synthetic[key]; ok {
		return id
	}

	id := mint()
	r.synthetic[key] = id
	return id
}

func mint() person.ID {
	suffix, err := zcrypto.RandBytes(4)
	if err != nil {
		// out of entropy; the timestamp alone still distinguishes sessions
		suffix = []byte{0, 0, 0, 0}
	}
	return person.ID(fmt.Sprintf("temp-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix)))
}
