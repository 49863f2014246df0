package verification

import (
	"context"
	"strings"

	"github.com/gabapcia/landpay/internal/ledger"
)

// textEvidenceComparer is a minimal document check: the evidence must carry
// content and its text must reference both the transaction's unique code and
// the paid amount. Richer extraction (OCR, vision APIs) can replace it behind
// the same interface.
type textEvidenceComparer struct{}

// Compile-time check that textEvidenceComparer satisfies EvidenceComparer.
var _ EvidenceComparer = (*textEvidenceComparer)(nil)

// NewTextEvidenceComparer creates an EvidenceComparer that matches the
// document text against the ledger record.
func NewTextEvidenceComparer() *textEvidenceComparer {
	return &textEvidenceComparer{}
}

func (textEvidenceComparer) CompareEvidence(ctx context.Context, evidence Evidence, tx ledger.Transaction) (bool, error) {
	if len(evidence.Data) == 0 {
		return false, nil
	}

	text := string(evidence.Data)
	return strings.Contains(text, tx.UniqueCode) && strings.Contains(text, tx.Amount.String()), nil
}
