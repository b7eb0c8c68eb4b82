package runtime

import (
	"context"
	"errors"
	"fmt"
	"testing"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibylline/sibyl/internal/augur/service/qa/pkg/errno"
)

// plainChatModel implements BaseChatModel but not ToolCallingChatModel.
type plainChatModel struct{}

func (plainChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...einoModel.Option) (*schema.Message, error) {
	return schema.AssistantMessage("hi", nil), nil
}

func (plainChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...einoModel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestNewEinoEngineRejectsNonToolCapableModel(t *testing.T) {
	_, err := NewEinoEngine(plainChatModel{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errno.ErrModelNotToolCapable)
}

func TestGraphName(t *testing.T) {
	assert.Equal(t, "sql_agent", graphName("SQL Agent"))
	assert.Equal(t, "single_agent", graphName("single_agent"))
	assert.Equal(t, "qa_agent", graphName(""))
}

func TestIsMaxTurnsError(t *testing.T) {
	assert.False(t, isMaxTurnsError(nil))
	assert.False(t, isMaxTurnsError(errors.New("connection refused")))

	assert.True(t, isMaxTurnsError(compose.ErrExceedMaxSteps))
	assert.True(t, isMaxTurnsError(fmt.Errorf("node run failed: %w", compose.ErrExceedMaxSteps)))
	assert.True(t, isMaxTurnsError(errno.ErrMaxTurnsExceeded))
	assert.True(t, isMaxTurnsError(errors.New("graph exceeds max steps 11")))
}
