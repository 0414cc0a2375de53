package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePaper(t *testing.T) {
	tests := []struct {
		name    string
		paper   *Paper
		wantErr error
	}{
		{
			name:  "valid paper",
			paper: &Paper{Title: "A Paper", Abstract: "text"},
		},
		{
			name:  "valid paper without abstract",
			paper: &Paper{Title: "A Paper"},
		},
		{
			name:    "nil paper",
			paper:   nil,
			wantErr: ErrInvalidPaper,
		},
		{
			name:    "empty title",
			paper:   &Paper{Abstract: "text"},
			wantErr: ErrEmptyTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaper(tt.paper)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
