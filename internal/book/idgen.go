package book

import (
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// RandomIDs generates 24 character hex ids from random UUIDs.
type RandomIDs struct{}

func (RandomIDs) NewID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:12])
}

// SequentialIDs generates zero padded hex ids counting up from 1.
// Useful wherever ids need to be predictable.
type SequentialIDs struct {
	n atomic.Uint64
}

func (s *SequentialIDs) NewID() string {
	return fmt.Sprintf("%024x", s.n.Add(1))
}
