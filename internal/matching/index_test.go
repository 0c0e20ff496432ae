package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchIndex(t *testing.T) {
	jobs := []JobRecord{
		{
			JobRef:            45231,
			JobType:           JobTypeImport,
			ContainerNumber:   "MSCU 1234567",
			CustomerReference: "po-7781",
			AgentReference:    "AG 4452",
			Weight:            "1,200.0",
			VesselName:        "Ever Given",
			CustomerID:        7,
		},
	}
	customers := []CustomerRecord{{ID: 7, CompanyName: "Oceanic Imports Ltd"}}

	idx := BuildSearchIndex(jobs, customers)

	t.Run("Codes are stripped and uppercased", func(t *testing.T) {
		require.Len(t, idx.Containers["MSCU1234567"], 1)
		assert.Equal(t, "Container Number", idx.Containers["MSCU1234567"][0].Field)

		require.Len(t, idx.References["PO-7781"], 1)
		require.Len(t, idx.References["AG4452"], 1)
		assert.Equal(t, "Agent Reference", idx.References["AG4452"][0].Field)
	})

	t.Run("Names are only case folded", func(t *testing.T) {
		require.Len(t, idx.CompanyNames["oceanic imports ltd"], 1)
		assert.Equal(t, "Oceanic Imports Ltd", idx.CompanyNames["oceanic imports ltd"][0].Value)

		require.Len(t, idx.Vessels["ever given"], 1)
	})

	t.Run("Job reference is indexed as its decimal string", func(t *testing.T) {
		require.Len(t, idx.JobRefs["45231"], 1)
		entry := idx.JobRefs["45231"][0]
		assert.Equal(t, 45231, entry.JobRef)
		assert.Equal(t, JobTypeImport, entry.JobType)
	})

	t.Run("Weights index under their canonical decimal", func(t *testing.T) {
		require.Len(t, idx.Weights["1200"], 1)
	})

	t.Run("Customer name lookup", func(t *testing.T) {
		assert.Equal(t, "Oceanic Imports Ltd", idx.CustomerNameFor(45231))
		assert.Empty(t, idx.CustomerNameFor(99999))
	})
}

func TestBuildSearchIndex_SkipsEmptyFields(t *testing.T) {
	jobs := []JobRecord{{JobRef: 30001, JobType: JobTypeExport}}

	idx := BuildSearchIndex(jobs, nil)

	assert.Empty(t, idx.Containers)
	assert.Empty(t, idx.References)
	assert.Empty(t, idx.Weights)
	assert.Empty(t, idx.Vessels)
	assert.Empty(t, idx.CompanyNames)
	assert.Len(t, idx.JobRefs, 1)
}

func TestBuildSearchIndex_SharedKeyCollectsBothJobs(t *testing.T) {
	jobs := []JobRecord{
		{JobRef: 30001, JobType: JobTypeImport, ContainerNumber: "ABCD1234567"},
		{JobRef: 30002, JobType: JobTypeClearance, ContainerNumber: "abcd 1234567"},
	}

	idx := BuildSearchIndex(jobs, nil)

	assert.Len(t, idx.Containers["ABCD1234567"], 2)
}
