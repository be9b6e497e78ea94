package usecase

import "github.com/edsonnoyola/Biajez-sub000/internal/domain"

// DeduplicateFlights collapses offers for the same physical flight sold
// by different suppliers. Flights are grouped by a structural key (first
// segment carrier + flight number + departure timestamp); within a group
// only the cheapest entry survives, and a price tie keeps the first one
// encountered.
//
// Fare condition differences between duplicates are discarded along with
// the pricier entry. That precision loss is accepted: the cheapest fare
// for a given physical flight is the one worth showing.
//
// The input order is preserved for the surviving entries and the input
// slice is not mutated.
func DeduplicateFlights(flights []domain.Flight) []domain.Flight {
	if len(flights) <= 1 {
		return flights
	}

	seen := make(map[string]int, len(flights))
	result := make([]domain.Flight, 0, len(flights))

	for _, f := range flights {
		key := f.Fingerprint()
		if key == "" {
			// No segments, nothing to group on.
			result = append(result, f)
			continue
		}

		idx, exists := seen[key]
		if !exists {
			seen[key] = len(result)
			result = append(result, f)
			continue
		}

		if f.Price.Amount < result[idx].Price.Amount {
			result[idx] = f
		}
	}

	return result
}
