package usecase

import (
	"github.com/allisson/privacy/internal/hashing"
)

type saltedHashService struct {
	salt string
}

// NewSaltedHashService creates a HashService that digests values with a
// deployment-wide salt. The salt keeps value hashes from being matched
// against rainbow tables built over common PII formats; it must stay
// stable for the lifetime of the vault or existing lookups break.
func NewSaltedHashService(salt string) HashService {
	return &saltedHashService{salt: salt}
}

func (s *saltedHashService) Hash(value string) string {
	return hashing.HashWithSalt(value, s.salt)
}
