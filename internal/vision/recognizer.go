package vision

import "context"

// Recognizer turns an image into the text visible in it. The pipeline
// treats this as an opaque capability; implementations decide how the
// recognition actually happens.
type Recognizer interface {
	// Recognize returns the text found in the image, top to bottom.
	Recognize(ctx context.Context, imageData []byte, mimeType string) (string, error)
}
