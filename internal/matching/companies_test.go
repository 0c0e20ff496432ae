package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCompanyNames_SupplierSelection(t *testing.T) {
	text := "Swift Freight Ltd\n" +
		"123 Dock Road\n" +
		"\n" +
		"Consignor:\n" +
		"Oceanic Imports Ltd\n"

	ext := ExtractCompanyNames(text, nil)

	assert.Equal(t, "Swift Freight Ltd", ext.SupplierName)
	assert.Equal(t, []string{"Swift Freight Ltd", "Oceanic Imports Ltd"}, ext.Companies)
}

func TestExtractCompanyNames_ExclusionResetsOnBlankLine(t *testing.T) {
	text := "Consignor:\n" +
		"Oceanic Imports Ltd\n" +
		"\n" +
		"Swift Freight Ltd\n"

	ext := ExtractCompanyNames(text, nil)

	assert.Equal(t, "Swift Freight Ltd", ext.SupplierName)
	assert.Equal(t, []CompanyMention{
		{Name: "Oceanic Imports Ltd", Excluded: true},
		{Name: "Swift Freight Ltd", Excluded: false},
	}, ext.Mentions)
}

func TestExtractCompanyNames_CustomerHeader(t *testing.T) {
	text := "Swift Freight Ltd\n" +
		"\n" +
		"Customer:\n" +
		"Oceanic Imports Ltd\n"

	ext := ExtractCompanyNames(text, nil)

	assert.Equal(t, "Swift Freight Ltd", ext.SupplierName)
	assert.Equal(t, "Oceanic Imports Ltd", ext.CustomerName)
}

func TestExtractCompanyNames_ExcludedProviderWinsSupplier(t *testing.T) {
	providers := []string{"Swift Clearance Services"}
	text := "Importer:\n" +
		"Swift Clearance Services Ltd\n" +
		"\n" +
		"Global Traders Ltd\n"

	ext := ExtractCompanyNames(text, providers)

	// The provider issued the invoice even though it sits under an
	// exclusion header; the canonical provider name wins.
	assert.Equal(t, "Swift Clearance Services", ext.SupplierName)
}

func TestExtractCompanyNames_SupplierCanonicalisedAgainstProviders(t *testing.T) {
	providers := []string{"Swift Clearance Services"}
	text := "Swift Clearance Services (UK) Ltd\n"

	ext := ExtractCompanyNames(text, providers)

	assert.Equal(t, "Swift Clearance Services", ext.SupplierName)
}

func TestExtractCompanyNames_GenericShapeNeedsTwoTokens(t *testing.T) {
	text := "INVOICE\n" +
		"Global Traders\n"

	ext := ExtractCompanyNames(text, nil)

	assert.Equal(t, []string{"Global Traders"}, ext.Companies)
	assert.Equal(t, "Global Traders", ext.SupplierName)
}

func TestExtractCompanyNames_AllExcludedLeavesNoSupplier(t *testing.T) {
	text := "Invoice To:\n" +
		"Global Traders Ltd\n"

	ext := ExtractCompanyNames(text, nil)

	assert.Empty(t, ext.SupplierName)
	assert.Equal(t, []CompanyMention{{Name: "Global Traders Ltd", Excluded: true}}, ext.Mentions)
}

func TestExtractCompanyNames_EmptyText(t *testing.T) {
	ext := ExtractCompanyNames("", nil)

	assert.Empty(t, ext.Companies)
	assert.Empty(t, ext.SupplierName)
	assert.Empty(t, ext.CustomerName)
}
