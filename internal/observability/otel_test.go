package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHeaders(t *testing.T) {
	require.Nil(t, ParseHeaders(""))
	require.Nil(t, ParseHeaders("garbage,=x"))
	require.Equal(t, map[string]string{"api-key": "abc", "tenant": "t1"}, ParseHeaders(" api-key=abc , tenant=t1,bad"))
}

func TestClampRatio(t *testing.T) {
	require.Equal(t, 0.0, clampRatio(-1))
	require.Equal(t, 1.0, clampRatio(3))
	require.Equal(t, 0.25, clampRatio(0.25))
}

func TestSpansWorkWithoutProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test.span")
	require.NotNil(t, ctx)
	EndSpan(span, errors.New("boom"))
}
