// Package repository persists records in the hosted external store. Every
// mutating call is a single unconditional round trip; there are no local
// transactions and no multi-record atomicity.
package repository

import (
	"context"

	"github.com/zidalco/backend/pkg/supabase"
)

// Store is the slice of the store client the repositories use. Satisfied by
// *supabase.Client.
type Store interface {
	Do(ctx context.Context, method, path string, body any) supabase.Result
}

// defaultLimit caps listings when the caller supplies no limit.
const defaultLimit = 50
