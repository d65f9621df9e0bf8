// internal/workers/records/delete-application-record/handler_test.go
package deleteapplicationrecord

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobhunt-tracker/internal/common/errors"
	"jobhunt-tracker/internal/common/logger"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) Dirty() bool {
	return m.Called().Bool(0)
}

func newHandler(t *testing.T, st RecordStore) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, st, logger.NewTestLogger(t))
}

func TestHandler_Execute_Confirmed(t *testing.T) {
	st := new(mockStore)
	st.On("Delete", mock.Anything, "app-1").Return(nil)
	st.On("Dirty").Return(true)

	output, err := newHandler(t, st).Execute(context.Background(), &Input{ApplicationID: "app-1", Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, &Output{ApplicationID: "app-1", Deleted: true, IsDirty: true}, output)
	st.AssertExpectations(t)
}

func TestHandler_Execute_RequiresConfirmation(t *testing.T) {
	st := new(mockStore)

	_, err := newHandler(t, st).Execute(context.Background(), &Input{ApplicationID: "app-1"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfirmationRequired, errors.CodeOf(err))
	st.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestHandler_Execute_MissingID(t *testing.T) {
	st := new(mockStore)

	_, err := newHandler(t, st).Execute(context.Background(), &Input{Confirmed: true})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeApplicationValidationFailed, errors.CodeOf(err))
}

func TestHandler_Execute_NotFound(t *testing.T) {
	st := new(mockStore)
	st.On("Delete", mock.Anything, "ghost").Return(errors.NewApplicationNotFoundError("ghost"))

	_, err := newHandler(t, st).Execute(context.Background(), &Input{ApplicationID: "ghost", Confirmed: true})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeApplicationNotFound, errors.CodeOf(err))

	bpmn := errors.ConvertToBPMNError(errors.Normalize(err))
	assert.Equal(t, 0, bpmn.Retries)
	assert.Equal(t, "ghost", bpmn.ErrorVariables["applicationId"])
}
