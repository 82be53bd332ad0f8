package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/logship/internal/dispatcher"
	mock_dispatcher "github.com/oshokin/logship/internal/dispatcher/mocks"
)

// TestShipStream tests NDJSON parsing, dispatching, and skip counting.
func TestShipStream(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		input              string
		expectedRecords    []dispatcher.Record
		expectedSkipped    int64
		expectedDispatched int64
	}{
		{
			name:  "well-formed stream",
			input: `{"level":"info","message":"first"}` + "\n" + `{"level":"error","message":"second"}` + "\n",
			expectedRecords: []dispatcher.Record{
				{"level": "info", "message": "first"},
				{"level": "error", "message": "second"},
			},
			expectedDispatched: 2,
		},
		{
			name:  "empty lines are ignored",
			input: "\n\n" + `{"message":"only"}` + "\n\n",
			expectedRecords: []dispatcher.Record{
				{"message": "only"},
			},
			expectedDispatched: 1,
		},
		{
			name:  "malformed lines are skipped, stream continues",
			input: "not json\n" + `{"message":"survivor"}` + "\n{broken\n",
			expectedRecords: []dispatcher.Record{
				{"message": "survivor"},
			},
			expectedSkipped:    2,
			expectedDispatched: 1,
		},
		{
			name:  "empty stream",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var dispatchedRecords []dispatcher.Record

			mockDispatcher := mock_dispatcher.NewMockDispatcher(ctrl)
			mockDispatcher.EXPECT().
				Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).
				Do(func(_ context.Context, record dispatcher.Record, done func()) {
					dispatchedRecords = append(dispatchedRecords, record)
					done()
				}).
				Times(len(tt.expectedRecords))

			stats := &shippingStats{}

			err := shipStream(context.Background(), mockDispatcher, strings.NewReader(tt.input), stats, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedRecords, dispatchedRecords)
			assert.Equal(t, tt.expectedSkipped, stats.skipped.Load())
			assert.Equal(t, tt.expectedDispatched, stats.dispatched.Load())
		})
	}
}

// TestShipStream_CanceledContext tests that shipping stops once the context is canceled.
func TestShipStream_CanceledContext(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDispatcher := mock_dispatcher.NewMockDispatcher(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := &shippingStats{}
	input := `{"message":"never shipped"}` + "\n"

	err := shipStream(ctx, mockDispatcher, strings.NewReader(input), stats, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.dispatched.Load())
}
