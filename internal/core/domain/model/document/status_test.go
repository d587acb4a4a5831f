package document_test

import (
	"testing"

	"transportorder/internal/core/domain/model/document"
	"transportorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, s := range []document.Status{document.Generated, document.Queued, document.Submitted, document.Rejected} {
		require.NoError(t, s.Validate(), s.String())
	}
	require.ErrorIs(t, document.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.Error(t, document.Status(99).Validate())
	assert.Equal(t, "Unknown", document.Status(99).String())
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		transition func(document.Status) (document.Status, error)
		from       document.Status
		want       document.Status
		wantErr    bool
	}{
		{"queue generated", document.Status.Queue, document.Generated, document.Queued, false},
		{"queue submitted", document.Status.Queue, document.Submitted, document.Unknown, true},
		{"submit queued", document.Status.Submit, document.Queued, document.Submitted, false},
		{"submit generated", document.Status.Submit, document.Generated, document.Unknown, true},
		{"reject queued", document.Status.Reject, document.Queued, document.Rejected, false},
		{"reject rejected", document.Status.Reject, document.Rejected, document.Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.transition(tt.from)

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_IsFinal(t *testing.T) {
	assert.False(t, document.Generated.IsFinal())
	assert.False(t, document.Queued.IsFinal())
	assert.True(t, document.Submitted.IsFinal())
	assert.True(t, document.Rejected.IsFinal())
}
