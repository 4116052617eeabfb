package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
)

func TestParseID(t *testing.T) {
	valid := id.New()

	parsed, err := ParseID("clientId", valid.String())
	require.NoError(t, err)
	assert.Equal(t, valid, parsed)

	_, err = ParseID("clientId", "not-a-uuid")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "clientId", appErr.Details["field"])
}

func TestParseOptionalID(t *testing.T) {
	got, err := ParseOptionalID("societyId", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	empty := ""
	got, err = ParseOptionalID("societyId", &empty)
	require.NoError(t, err)
	assert.Nil(t, got)

	raw := id.New().String()
	got, err = ParseOptionalID("societyId", &raw)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, raw, got.String())
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("date", "")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = ParseDate("date", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("date", "2024-06-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	_, err = ParseDate("date", "15/06/2024")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestSaleRequestToInput(t *testing.T) {
	clientID := id.New()
	articleID := id.New()

	req := SaleRequest{
		Date:     "2024-06-15",
		ClientID: clientID.String(),
		Lines: []SaleLineRequest{
			{ArticleID: articleID.String(), Cases: 5, PricePerCase: 30},
		},
	}

	in, err := req.ToInput()
	require.NoError(t, err)
	assert.Equal(t, clientID, in.ClientID)
	assert.Nil(t, in.SocietyID)
	require.Len(t, in.Lines, 1)
	assert.Equal(t, articleID, in.Lines[0].ArticleID)
	assert.Equal(t, 5, in.Lines[0].Cases)
	assert.Equal(t, "30", in.Lines[0].PricePerCase.String())
}

func TestSaleRequestToInput_BadLineID(t *testing.T) {
	req := SaleRequest{
		ClientID: id.New().String(),
		Lines: []SaleLineRequest{
			{ArticleID: "garbage", Cases: 1, PricePerCase: 10},
		},
	}

	_, err := req.ToInput()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, 0, appErr.Details["line"])
}
