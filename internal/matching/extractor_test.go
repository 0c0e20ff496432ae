package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJobReferences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []int
	}{
		{
			name:     "Labelled job reference",
			text:     "Job Ref: 45231",
			expected: []int{45231},
		},
		{
			name:     "Bare in-range number",
			text:     "see 37777 for details",
			expected: []int{37777},
		},
		{
			name:     "Below range is discarded",
			text:     "Job Ref: 12345",
			expected: nil,
		},
		{
			name:     "Range boundaries",
			text:     "26001 26000 99999",
			expected: []int{26001, 99999},
		},
		{
			name:     "Longer digit runs do not match",
			text:     "container 1234567 total 100000",
			expected: nil,
		},
		{
			name:     "Duplicates collapse",
			text:     "45231 mentioned twice 45231",
			expected: []int{45231},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJobReferences(tt.text))
		})
	}
}

func TestExtractContainerNumbers(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Plain container number",
			text:     "loaded in MSCU1234567 yesterday",
			expected: []string{"MSCU1234567"},
		},
		{
			name:     "Spaces interspersed",
			text:     "CMAU 0076925",
			expected: []string{"CMAU0076925"},
		},
		{
			name:     "Slash-separated list",
			text:     "ABCD1234567/EFGH7654321",
			expected: []string{"ABCD1234567", "EFGH7654321"},
		},
		{
			name:     "Lowercase is normalized",
			text:     "mscu 1234567",
			expected: []string{"MSCU1234567"},
		},
		{
			name:     "Three letters is not a container",
			text:     "ABC1234567",
			expected: nil,
		},
		{
			name:     "Six digits is not a container",
			text:     "ABCD123456",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractContainerNumbers(tt.text))
		})
	}
}

func TestExtractTruckNumbers(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Trigger word capture",
			text:     "Vehicle: XY12ABC",
			expected: []string{"XY12ABC"},
		},
		{
			name:     "Registration trigger",
			text:     "Reg no TR88-42X",
			expected: []string{"TR88-42X"},
		},
		{
			name:     "Standalone mixed token",
			text:     "shipment via TR8842X overnight",
			expected: []string{"TR8842X"},
		},
		{
			name:     "Container shape is excluded",
			text:     "Trailer: MSCU1234567",
			expected: nil,
		},
		{
			name:     "UK postcode is excluded",
			text:     "Vehicle: SW1A1AA",
			expected: nil,
		},
		{
			name:     "Long digit run is excluded",
			text:     "Truck 98765432",
			expected: nil,
		},
		{
			name:     "Long letter run is excluded",
			text:     "DELIVERY88 note",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractTruckNumbers(tt.text))
		})
	}
}

func TestContainerAndTruckExtractionAreDisjoint(t *testing.T) {
	text := "units MSCU1234567 and TR8842X on board"

	containers := ExtractContainerNumbers(text)
	trucks := ExtractTruckNumbers(text)

	assert.Contains(t, containers, "MSCU1234567")
	assert.NotContains(t, trucks, "MSCU1234567")
	assert.Contains(t, trucks, "TR8842X")
	assert.NotContains(t, containers, "TR8842X")
}

func TestExtractCustomerReferences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Inline value",
			text:     "Customer Ref: PO-7781",
			expected: []string{"PO-7781"},
		},
		{
			name:     "Value on the next line",
			text:     "Your Reference:\nABC-12345",
			expected: []string{"ABC-12345"},
		},
		{
			name:     "OCR misspelling refersice",
			text:     "Refersice: XK4452",
			expected: []string{"XK4452"},
		},
		{
			name:     "Order number label",
			text:     "Order No: 556677",
			expected: []string{"556677"},
		},
		{
			name:     "Too short is dropped",
			text:     "Customer Ref: AB",
			expected: nil,
		},
		{
			name:     "Too long is dropped",
			text:     "Customer Ref: " + "X1234567890123456789012345678901",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCustomerReferences(tt.text))
		})
	}
}

func TestExtractInvoiceNumbers(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Invoice number label",
			text:     "Invoice No: INV-88421",
			expected: []string{"INV-88421"},
		},
		{
			name:     "Inv hash label",
			text:     "Inv # 200455",
			expected: []string{"200455"},
		},
		{
			name:     "Generic number label needs six digits",
			text:     "Number: 123456",
			expected: []string{"123456"},
		},
		{
			name:     "Generic label with five digits is ignored",
			text:     "Number: 12345",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractInvoiceNumbers(tt.text))
		})
	}
}

func TestExtractDates(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Day first with slashes",
			text:     "dated 14/03/2024 at port",
			expected: []string{"14/03/2024"},
		},
		{
			name:     "Year first with dashes",
			text:     "booked 2024-03-14",
			expected: []string{"2024-03-14"},
		},
		{
			name:     "Two digit year with dots",
			text:     "1.2.23",
			expected: []string{"1.2.23"},
		},
		{
			name:     "No dates",
			text:     "nothing here",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractDates(tt.text))
		})
	}
}

func TestExtractWeights(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Unit suffix",
			text:     "cargo of 1200 kg",
			expected: []string{"1200"},
		},
		{
			name:     "Label with thousands separator",
			text:     "Gross Weight: 18,500",
			expected: []string{"18500"},
		},
		{
			name:     "Tonnes unit",
			text:     "24.5 tonnes",
			expected: []string{"24.5"},
		},
		{
			name:     "Out of range is dropped",
			text:     "150000 kg",
			expected: nil,
		},
		{
			name:     "Zero is dropped",
			text:     "0 kg",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractWeights(tt.text))
		})
	}
}

func TestDetectCreditNote(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{name: "Credit note upper case", text: "CREDIT NOTE No 44", expected: true},
		{name: "Credit memo", text: "This Credit Memo covers", expected: true},
		{name: "CN hash", text: "cn # 1202", expected: true},
		{name: "Refund", text: "Refund issued", expected: true},
		{name: "Plain invoice", text: "INVOICE 1202", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectCreditNote(tt.text))
		})
	}
}
