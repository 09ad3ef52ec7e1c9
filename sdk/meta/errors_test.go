package meta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testType        = "Experience"
	testResourceID  = "86df2cbd-2339-4bbb-ab5b-0b3f54668a4b"
	testErrorReason = "that's not how any of this works"
)

var testErrorDetails = []string{"the", "devil", "is", "in", "the", "details"}

func TestErrAuthentication(t *testing.T) {
	err := &ErrAuthentication{
		Reason: testErrorReason,
	}
	require.Contains(t, err.Error(), testErrorReason)
	err = &ErrAuthentication{}
	require.Contains(t, err.Error(), "authenticate")
}

func TestErrAuthorization(t *testing.T) {
	err := &ErrAuthorization{}
	require.Contains(t, err.Error(), "not authorized")
}

func TestErrBadRequest(t *testing.T) {
	testCases := []struct {
		name       string
		err        *ErrBadRequest
		assertions func(t *testing.T, err *ErrBadRequest)
	}{
		{
			name: "without reason",
			err:  &ErrBadRequest{},
			assertions: func(t *testing.T, err *ErrBadRequest) {
				require.Contains(t, err.Error(), "invalid")
			},
		},
		{
			name: "without details",
			err: &ErrBadRequest{
				Reason: testErrorReason,
			},
			assertions: func(t *testing.T, err *ErrBadRequest) {
				require.Contains(t, err.Error(), testErrorReason)
				for _, detail := range err.Details {
					require.NotContains(t, err.Error(), detail)
				}
			},
		},
		{
			name: "with details",
			err: &ErrBadRequest{
				Reason:  testErrorReason,
				Details: testErrorDetails,
			},
			assertions: func(t *testing.T, err *ErrBadRequest) {
				require.Contains(t, err.Error(), testErrorReason)
				for _, detail := range err.Details {
					require.Contains(t, err.Error(), detail)
				}
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.assertions(t, testCase.err)
		})
	}
}

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{
		Type: testType,
		ID:   testResourceID,
	}
	require.Contains(t, err.Error(), "not found")
	require.Contains(t, err.Error(), testType)
	require.Contains(t, err.Error(), testResourceID)
	err = &ErrNotFound{}
	require.Contains(t, err.Error(), "not found")
}

func TestErrConflict(t *testing.T) {
	err := &ErrConflict{
		Reason: testErrorReason,
	}
	require.Equal(t, testErrorReason, err.Error())
	err = &ErrConflict{}
	require.Contains(t, err.Error(), "conflicted")
}

func TestErrInternalServer(t *testing.T) {
	err := &ErrInternalServer{}
	require.Contains(t, err.Error(), "internal server error")
}
