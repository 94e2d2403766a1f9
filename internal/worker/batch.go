package worker

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arpansaha13/enrollkit/internal/domain"
	"github.com/arpansaha13/enrollkit/internal/service"
)

// enrollBatch is the layout of a bulk enrollment file
type enrollBatch struct {
	Users []service.EnrollUserRequest `yaml:"users"`
}

// LoadEnrollBatch parses a YAML document with a top-level users list.
// Every entry needs a userName; unknown keys are rejected.
func LoadEnrollBatch(r io.Reader) ([]service.EnrollUserRequest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var batch enrollBatch
	if err := dec.Decode(&batch); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse enroll batch: %w", err)
	}

	for i, u := range batch.Users {
		if u.UserName == "" {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("users[%d]: userName is required", i),
				Field:   "userName",
			}
		}
	}
	return batch.Users, nil
}
