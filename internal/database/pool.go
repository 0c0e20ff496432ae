package database

import (
	"fmt"

	"invoice-matching/internal/matching"
)

// LoadPool assembles the in-memory job pool snapshot the matching engine
// runs against. Every analysis call gets a fresh snapshot.
func (db *DB) LoadPool() (*matching.JobPool, error) {
	jobs, err := db.Jobs.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}

	customers, err := db.Customers.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	providers, err := db.Providers.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load providers: %w", err)
	}

	pool := &matching.JobPool{}

	for _, job := range jobs {
		record := matching.JobRecord{
			JobRef:            job.JobRef,
			JobType:           matching.JobType(job.JobType),
			BookingDate:       job.BookingDate,
			ContainerNumber:   job.ContainerNumber,
			CustomerReference: job.CustomerReference,
			AgentReference:    job.AgentReference,
			Weight:            job.Weight,
			VesselName:        job.VesselName,
			CustomerID:        job.CustomerID,
		}
		switch record.JobType {
		case matching.JobTypeImport:
			pool.Imports = append(pool.Imports, record)
		case matching.JobTypeExport:
			pool.Exports = append(pool.Exports, record)
		case matching.JobTypeClearance:
			pool.Clearances = append(pool.Clearances, record)
		default:
			return nil, fmt.Errorf("unknown job type %q for job %d", job.JobType, job.JobRef)
		}
	}

	for _, c := range customers {
		pool.Customers = append(pool.Customers, matching.CustomerRecord{
			ID:          c.ID,
			CompanyName: c.CompanyName,
		})
	}

	for _, p := range providers {
		record := matching.ServiceProviderRecord{ID: p.ID, Name: p.Name}
		switch p.Kind {
		case ProviderKindClearanceAgent:
			pool.ClearanceAgents = append(pool.ClearanceAgents, record)
		case ProviderKindHaulier:
			pool.Hauliers = append(pool.Hauliers, record)
		case ProviderKindShippingLine:
			pool.ShippingLines = append(pool.ShippingLines, record)
		}
	}

	return pool, nil
}
