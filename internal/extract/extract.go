package extract

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ConditionNotFound is returned when the OCR text has no recognizable
// condition label. Unlike a missing price, this is not an error.
const ConditionNotFound = "Not found"

// InputError indicates the image payload was missing or malformed. It is
// rejected before any processing happens.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid image payload: %s", e.Reason)
}

// ExtractionError indicates the OCR text contained no dollar-amount
// pattern. Without a price there is nothing to compare, so the whole
// request is aborted.
type ExtractionError struct {
	Text string
}

func (e *ExtractionError) Error() string {
	return "no price found in extracted text"
}

// Fields is the parsed listing data used to drive both source adapters.
type Fields struct {
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Condition string  `json:"condition"`
}

var (
	dataURLRe   = regexp.MustCompile(`^data:image/\w+;base64,`)
	priceRe     = regexp.MustCompile(`\$\d+\.?\d*`)
	conditionRe = regexp.MustCompile(`Condition\s*(\S+)`)
)

// DecodeImageDataURL decodes a base64 data-URL screenshot into raw image
// bytes and its MIME type. A bare base64 payload without the data-URL
// prefix is accepted and assumed to be a PNG.
func DecodeImageDataURL(payload string) ([]byte, string, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, "", &InputError{Reason: "no image data provided"}
	}

	mimeType := "image/png"
	if prefix := dataURLRe.FindString(payload); prefix != "" {
		mimeType = strings.TrimSuffix(strings.TrimPrefix(prefix, "data:"), ";base64,")
		payload = payload[len(prefix):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", &InputError{Reason: "image data is not valid base64"}
	}
	if len(data) == 0 {
		return nil, "", &InputError{Reason: "image data is empty"}
	}

	return data, mimeType, nil
}

// ParseFields applies the extraction rules to raw OCR text. The title is
// everything before the first dollar sign, the price is the first
// dollar-amount substring, and the condition is the word following the
// "Condition" label. Only a missing price is fatal.
func ParseFields(rawText string) (Fields, error) {
	priceMatch := priceRe.FindString(rawText)
	if priceMatch == "" {
		return Fields{}, &ExtractionError{Text: rawText}
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimPrefix(priceMatch, "$"), ",", ""), 64)
	if err != nil {
		return Fields{}, &ExtractionError{Text: rawText}
	}

	title := rawText
	if i := strings.IndexByte(rawText, '$'); i >= 0 {
		title = rawText[:i]
	}
	title = strings.TrimSpace(title)

	condition := ConditionNotFound
	if m := conditionRe.FindStringSubmatch(rawText); m != nil {
		condition = m[1]
	}

	return Fields{
		Title:     title,
		Price:     price,
		Condition: condition,
	}, nil
}
