// Package classify separates operating companies from financial
// institutions. FCFF valuation is only defined for the former; banks and
// insurers report interest income as an operating line, which is the
// signal used here.
package classify

import "github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"

// CompanyType is the classification outcome.
type CompanyType string

const (
	Financial    CompanyType = "Financial"
	NonFinancial CompanyType = "Non-Financial"
)

// Classify inspects the extracted facts and reports whether the company
// looks like a financial institution.
func Classify(f baseyear.RawFacts) CompanyType {
	if f.InterestIncome != 0 {
		return Financial
	}
	return NonFinancial
}
