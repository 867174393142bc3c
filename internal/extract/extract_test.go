package extract

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Fields
	}{
		{
			name: "typical marketplace listing",
			text: "Game Boy Advance $123.45\nCondition Used\nLocal pickup",
			want: Fields{Title: "Game Boy Advance", Price: 123.45, Condition: "Used"},
		},
		{
			name: "whole dollar price",
			text: "Mountain bike $300 Condition Good",
			want: Fields{Title: "Mountain bike", Price: 300, Condition: "Good"},
		},
		{
			name: "text starting with dollar sign has empty title",
			text: "$50 desk lamp Condition New",
			want: Fields{Title: "", Price: 50, Condition: "New"},
		},
		{
			name: "missing condition falls back to sentinel",
			text: "Sofa in good shape $80",
			want: Fields{Title: "Sofa in good shape", Price: 80, Condition: ConditionNotFound},
		},
		{
			name: "condition label is case sensitive",
			text: "Old chair $10 condition worn",
			want: Fields{Title: "Old chair", Price: 10, Condition: ConditionNotFound},
		},
		{
			name: "first price wins",
			text: "Console bundle $219.95 was $300",
			want: Fields{Title: "Console bundle", Price: 219.95, Condition: ConditionNotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFields(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFieldsNoPrice(t *testing.T) {
	texts := []string{
		"",
		"Free couch, pickup only",
		"costs $ unknown",
		"price is 100 dollars",
	}

	for _, text := range texts {
		_, err := ParseFields(text)
		var extractionErr *ExtractionError
		assert.ErrorAs(t, err, &extractionErr, "text: %q", text)
	}
}

func TestDecodeImageDataURL(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	encoded := base64.StdEncoding.EncodeToString(raw)

	t.Run("data url with mime type", func(t *testing.T) {
		data, mimeType, err := DecodeImageDataURL("data:image/jpeg;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, data)
		assert.Equal(t, "image/jpeg", mimeType)
	})

	t.Run("bare base64 assumed png", func(t *testing.T) {
		data, mimeType, err := DecodeImageDataURL(encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, data)
		assert.Equal(t, "image/png", mimeType)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, _, err := DecodeImageDataURL("")
		var inputErr *InputError
		assert.ErrorAs(t, err, &inputErr)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := DecodeImageDataURL("data:image/png;base64,!!!not-base64!!!")
		var inputErr *InputError
		assert.ErrorAs(t, err, &inputErr)
	})
}
