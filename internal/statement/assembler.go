package statement

import (
	"fjacquet/finflow/internal/categorizer"
	"fjacquet/finflow/internal/models"
	"fjacquet/finflow/internal/parsererror"
)

// Assembler turns one block into a transaction or a reject reason.
// It holds only read-only configuration and is safe for concurrent use.
type Assembler struct {
	Tags  categorizer.TagMap
	Years YearRule
}

// NewAssembler creates an Assembler.
func NewAssembler(tags categorizer.TagMap, years YearRule) *Assembler {
	return &Assembler{Tags: tags, Years: years}
}

// Assemble extracts every field of block. Merchant, amount and date are all
// required; a missing one drops the whole block with its reason. The category
// never fails.
func (a *Assembler) Assemble(userID string, block Block) (models.Transaction, parsererror.RejectReason) {
	text := block.Text()

	merchant, ok := ExtractMerchant(text)
	if !ok {
		return models.Transaction{}, parsererror.ReasonMissingMerchant
	}

	category := ExtractCategory(text, a.Tags)

	amount, ok := ExtractAmount(text)
	if !ok {
		return models.Transaction{}, parsererror.ReasonMissingAmount
	}

	dm, ok := ExtractDate(text)
	if !ok {
		return models.Transaction{}, parsererror.ReasonMissingDate
	}
	date, err := a.Years.Resolve(dm)
	if err != nil {
		return models.Transaction{}, parsererror.ReasonInvalidDate
	}

	return models.Transaction{
		UserID:      userID,
		Date:        date,
		Description: merchant,
		Amount:      amount,
		Category:    category,
	}, parsererror.ReasonOK
}
