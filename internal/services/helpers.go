// internal/services/helpers.go
package services

import "github.com/lib/pq"

func pqArray(values []string) pq.StringArray {
	return pq.StringArray(values)
}
