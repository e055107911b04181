package nats

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agency/cryptoservice/internal/common"
	"github.com/agency/cryptoservice/internal/server/services"
)

func TestSaveResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		resp := saveResponse(&services.SaveResult{ID: "id1", Password: "pw", Key: "a2V5"}, nil)
		assert.True(t, resp.Success)
		assert.Equal(t, "id1", resp.ID)
		assert.Equal(t, "pw", resp.Password)
		assert.Equal(t, "a2V5", resp.AesKey)
		assert.Empty(t, resp.ErrorMessage)
	})

	t.Run("validation error is shown to the caller", func(t *testing.T) {
		err := fmt.Errorf("%w: message cannot be empty", common.ErrorValidation)
		resp := saveResponse(nil, err)
		assert.False(t, resp.Success)
		assert.Equal(t, err.Error(), resp.ErrorMessage)
	})

	t.Run("internal error is masked", func(t *testing.T) {
		resp := saveResponse(nil, errors.New("pq: connection refused"))
		assert.False(t, resp.Success)
		assert.Equal(t, msgInternalError, resp.ErrorMessage)
		assert.NotContains(t, resp.ErrorMessage, "pq:")
	})
}

func TestReceiveResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		resp := receiveResponse(&services.RedeemResult{Message: "secret", Deleted: true}, nil)
		assert.True(t, resp.Success)
		assert.Equal(t, "secret", resp.Message)
		assert.True(t, resp.Deleted)
		assert.Nil(t, resp.RemainingTries)
	})

	t.Run("not found", func(t *testing.T) {
		resp := receiveResponse(nil, common.ErrorNotFound)
		assert.False(t, resp.Success)
		assert.Equal(t, msgNotFound, resp.ErrorMessage)
		assert.True(t, resp.Deleted)
		assert.Nil(t, resp.RemainingTries)
	})

	t.Run("wrong credentials with remaining tries", func(t *testing.T) {
		credErr := &services.WrongCredentialsError{
			Reason:         services.ReasonInvalidPassword,
			RemainingTries: 2,
		}
		resp := receiveResponse(nil, credErr)
		assert.False(t, resp.Success)
		assert.Equal(t, services.ReasonInvalidPassword, resp.ErrorMessage)
		if assert.NotNil(t, resp.RemainingTries) {
			assert.Equal(t, 2, *resp.RemainingTries)
		}
		assert.False(t, resp.Deleted)
	})

	t.Run("wrong credentials exhausting the budget", func(t *testing.T) {
		credErr := &services.WrongCredentialsError{
			Reason:         services.ReasonInvalidKey,
			RemainingTries: 0,
			Deleted:        true,
		}
		resp := receiveResponse(nil, credErr)
		assert.False(t, resp.Success)
		assert.Equal(t, services.ReasonInvalidKey, resp.ErrorMessage)
		if assert.NotNil(t, resp.RemainingTries) {
			assert.Equal(t, 0, *resp.RemainingTries)
		}
		assert.True(t, resp.Deleted)
	})

	t.Run("internal error is masked", func(t *testing.T) {
		resp := receiveResponse(nil, errors.New("tx deadlock"))
		assert.False(t, resp.Success)
		assert.Equal(t, msgInternalError, resp.ErrorMessage)
	})
}

func TestReceiveMessageRequest_Normalize(t *testing.T) {
	req := &ReceiveMessageRequest{
		ID:       "  abc  ",
		Password: "\tpw\n",
		AesKey:   " a2V5 ",
	}
	req.Normalize()
	assert.Equal(t, "abc", req.ID)
	assert.Equal(t, "pw", req.Password)
	assert.Equal(t, "a2V5", req.AesKey)
}

func TestResponseWireShape(t *testing.T) {
	t.Run("remaining tries of zero is serialized", func(t *testing.T) {
		zero := 0
		data, err := json.Marshal(&ReceiveMessageResponse{
			ErrorMessage:   services.ReasonInvalidKey,
			RemainingTries: &zero,
			Deleted:        true,
		})
		if err != nil {
			t.Fatalf("marshal error: %v", err)
		}
		if !strings.Contains(string(data), `"remainingTries":0`) {
			t.Fatalf("zero remaining tries missing from payload: %s", data)
		}
	})

	t.Run("absent remaining tries is omitted", func(t *testing.T) {
		data, err := json.Marshal(&ReceiveMessageResponse{Success: true, Message: "m"})
		if err != nil {
			t.Fatalf("marshal error: %v", err)
		}
		if strings.Contains(string(data), "remainingTries") {
			t.Fatalf("unexpected remainingTries in payload: %s", data)
		}
	})

	t.Run("save response hides credentials on failure", func(t *testing.T) {
		data, err := json.Marshal(&SaveMessageResponse{Success: false, ErrorMessage: "x"})
		if err != nil {
			t.Fatalf("marshal error: %v", err)
		}
		for _, field := range []string{"password", "aesKey", "id"} {
			if strings.Contains(string(data), field) {
				t.Fatalf("field %q must be omitted from failure payload: %s", field, data)
			}
		}
	})
}
