package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		approved bool
		featured bool
		rejected bool
		want     SubmissionStatus
	}{
		{name: "all false is pending", want: StatusPending},
		{name: "approved only", approved: true, want: StatusApproved},
		{name: "approved and featured", approved: true, featured: true, want: StatusFeatured},
		{name: "rejected wins over approved", approved: true, rejected: true, want: StatusRejected},
		{name: "rejected wins over featured", approved: true, featured: true, rejected: true, want: StatusRejected},
		{name: "featured without approval normalizes to pending", featured: true, want: StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromFlags(tt.approved, tt.featured, tt.rejected))
		})
	}
}

func TestStatusFlagsRoundTrip(t *testing.T) {
	for _, status := range []SubmissionStatus{StatusPending, StatusApproved, StatusFeatured, StatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			approved, featured, rejected := status.Flags()
			assert.Equal(t, status, StatusFromFlags(approved, featured, rejected))
		})
	}
}

func TestStatusCanFeature(t *testing.T) {
	assert.False(t, StatusPending.CanFeature())
	assert.True(t, StatusApproved.CanFeature())
	assert.True(t, StatusFeatured.CanFeature())
	assert.False(t, StatusRejected.CanFeature())
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
	assert.False(t, StatusFeatured.Terminal())
	assert.True(t, StatusRejected.Terminal())
}

func TestSubmissionStatusDerivation(t *testing.T) {
	sub := &Submission{Approved: true, Featured: true}
	assert.Equal(t, StatusFeatured, sub.Status())

	sub.Rejected = true
	assert.Equal(t, StatusRejected, sub.Status())
}
