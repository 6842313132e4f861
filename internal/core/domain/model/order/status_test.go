package order_test

import (
	"testing"

	"salesorder/internal/core/domain/model/order"
	"salesorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_PersistedValues(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Created))
	assert.Equal(t, 2, int(order.Approved))
	assert.Equal(t, 3, int(order.Rejected))
	assert.Equal(t, 4, int(order.InsufficientProducts))
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Created, order.Approved, order.Rejected, order.InsufficientProducts} {
		assert.NoError(t, s.Validate(), s.String())
	}

	for _, s := range []order.Status{order.Unknown, order.Status(99), order.Status(-1)} {
		err := s.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Created", order.Created.String())
	assert.Equal(t, "InsufficientProducts", order.InsufficientProducts.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestParseStatus(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, s := range []order.Status{order.Created, order.Approved, order.Rejected, order.InsufficientProducts} {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("is case insensitive", func(t *testing.T) {
		parsed, err := order.ParseStatus("approved")
		require.NoError(t, err)
		assert.Equal(t, order.Approved, parsed)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.ParseStatus("Shipped")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.ParseStatus("Unknown")
		assert.Error(t, err)
	})
}

func TestStatus_Action(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		target  order.Status
		want    order.Status
		wantErr error
	}{
		{"created to approved", order.Created, order.Approved, order.Approved, nil},
		{"created to rejected", order.Created, order.Rejected, order.Rejected, nil},
		{"created to insufficient", order.Created, order.InsufficientProducts, order.InsufficientProducts, nil},
		{"insufficient to approved", order.InsufficientProducts, order.Approved, order.Approved, nil},
		{"insufficient again", order.InsufficientProducts, order.InsufficientProducts, order.InsufficientProducts, nil},
		{"approved is final", order.Approved, order.Rejected, order.Unknown, order.ErrOrderIsAlreadyApproved},
		{"approved to approved", order.Approved, order.Approved, order.Unknown, order.ErrOrderIsAlreadyApproved},
		{"rejected is final", order.Rejected, order.Approved, order.Unknown, order.ErrOrderIsRejected},
		{"target created", order.Created, order.Created, order.Unknown, errs.ErrValueIsInvalid},
		{"target unknown", order.Created, order.Unknown, order.Unknown, errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Action(tt.target)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_IsFinal(t *testing.T) {
	assert.True(t, order.Approved.IsFinal())
	assert.True(t, order.Rejected.IsFinal())
	assert.False(t, order.Created.IsFinal())
	assert.False(t, order.InsufficientProducts.IsFinal())
}
